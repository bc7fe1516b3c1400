package relay

import (
	"context"
	"sync"
	"time"

	"mediarelay/internal/api"
)

// callLog records the operations invoked on a fake backend.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (l *callLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// fakeRemote implements api.RemoteControl and returns err from every call.
type fakeRemote struct {
	callLog
	err error
}

func (f *fakeRemote) do(name string) error {
	f.add(name)
	return f.err
}

func (f *fakeRemote) Up(context.Context, api.InputAction) error     { return f.do("up") }
func (f *fakeRemote) Down(context.Context, api.InputAction) error   { return f.do("down") }
func (f *fakeRemote) Left(context.Context, api.InputAction) error   { return f.do("left") }
func (f *fakeRemote) Right(context.Context, api.InputAction) error  { return f.do("right") }
func (f *fakeRemote) Select(context.Context, api.InputAction) error { return f.do("select") }
func (f *fakeRemote) Menu(context.Context, api.InputAction) error   { return f.do("menu") }
func (f *fakeRemote) Home(context.Context, api.InputAction) error   { return f.do("home") }
func (f *fakeRemote) HomeHold(context.Context) error                { return f.do("home_hold") }
func (f *fakeRemote) TopMenu(context.Context) error                 { return f.do("top_menu") }
func (f *fakeRemote) Play(context.Context) error                    { return f.do("play") }
func (f *fakeRemote) PlayPause(context.Context) error               { return f.do("play_pause") }
func (f *fakeRemote) Pause(context.Context) error                   { return f.do("pause") }
func (f *fakeRemote) Stop(context.Context) error                    { return f.do("stop") }
func (f *fakeRemote) Next(context.Context) error                    { return f.do("next") }
func (f *fakeRemote) Previous(context.Context) error                { return f.do("previous") }
func (f *fakeRemote) VolumeUp(context.Context) error                { return f.do("volume_up") }
func (f *fakeRemote) VolumeDown(context.Context) error              { return f.do("volume_down") }
func (f *fakeRemote) Suspend(context.Context) error                 { return f.do("suspend") }
func (f *fakeRemote) WakeUp(context.Context) error                  { return f.do("wakeup") }
func (f *fakeRemote) SkipForward(context.Context) error             { return f.do("skip_forward") }
func (f *fakeRemote) SkipBackward(context.Context) error            { return f.do("skip_backward") }
func (f *fakeRemote) SetPosition(context.Context, int) error        { return f.do("set_position") }
func (f *fakeRemote) SetShuffle(context.Context, api.ShuffleState) error {
	return f.do("set_shuffle")
}
func (f *fakeRemote) SetRepeat(context.Context, api.RepeatState) error {
	return f.do("set_repeat")
}

// fakeMetadata implements api.Metadata with canned values.
type fakeMetadata struct {
	callLog
	deviceID  string
	artworkID string
	playing   api.Playing
	app       *api.App
	artwork   *api.ArtworkInfo
	err       error
}

func (f *fakeMetadata) DeviceID() string {
	f.add("device_id")
	return f.deviceID
}

func (f *fakeMetadata) Artwork(_ context.Context, size api.ArtworkSize) (*api.ArtworkInfo, error) {
	f.add("artwork")
	return f.artwork, f.err
}

func (f *fakeMetadata) ArtworkID() string {
	f.add("artwork_id")
	return f.artworkID
}

func (f *fakeMetadata) Playing(context.Context) (api.Playing, error) {
	f.add("playing")
	return f.playing, f.err
}

func (f *fakeMetadata) App() *api.App {
	f.add("app")
	return f.app
}

// fakePower implements api.Power and api.PowerNotifier.
type fakePower struct {
	callLog
	state    api.PowerState
	listener api.PowerListener
	err      error
}

func (f *fakePower) PowerState() api.PowerState {
	f.add("power_state")
	return f.state
}

func (f *fakePower) TurnOn(context.Context, bool) error {
	f.add("turn_on")
	return f.err
}

func (f *fakePower) TurnOff(context.Context, bool) error {
	f.add("turn_off")
	return f.err
}

func (f *fakePower) SetPowerListener(listener api.PowerListener) {
	f.listener = listener
}

func (f *fakePower) emit(oldState, newState api.PowerState) {
	if f.listener != nil {
		f.listener.PowerStateUpdate(oldState, newState)
	}
}

// plainPower implements api.Power without notifications.
type plainPower struct {
	state api.PowerState
}

func (p *plainPower) PowerState() api.PowerState          { return p.state }
func (p *plainPower) TurnOn(context.Context, bool) error  { return nil }
func (p *plainPower) TurnOff(context.Context, bool) error { return nil }

// fakeStream implements api.Stream.
type fakeStream struct {
	callLog
	urls []string
	err  error
}

func (f *fakeStream) PlayURL(_ context.Context, url string, _ api.PlayURLOptions) error {
	f.add("play_url")
	f.urls = append(f.urls, url)
	return f.err
}

func (f *fakeStream) Close() error {
	f.add("close")
	return f.err
}

// fakeApps implements api.Apps.
type fakeApps struct {
	callLog
	apps     []api.App
	launched []string
	err      error
}

func (f *fakeApps) AppList(context.Context) ([]api.App, error) {
	f.add("app_list")
	return f.apps, f.err
}

func (f *fakeApps) LaunchApp(_ context.Context, bundleID string) error {
	f.add("launch_app")
	f.launched = append(f.launched, bundleID)
	return f.err
}

// fakeFeatures answers every feature with a fixed state and counts queries.
type fakeFeatures struct {
	callLog
	state   api.FeatureState
	options map[string]any
}

func (f *fakeFeatures) GetFeature(name api.FeatureName) api.FeatureInfo {
	f.add(string(name))
	return api.FeatureInfo{State: f.state, Options: f.options}
}

// fakePushUpdater implements api.PushUpdater.
type fakePushUpdater struct {
	api.StateProducer[api.PushListener]
	active bool
}

func (f *fakePushUpdater) Start(time.Duration) error { f.active = true; return nil }
func (f *fakePushUpdater) Stop()                     { f.active = false }
func (f *fakePushUpdater) Active() bool              { return f.active }
func (f *fakePushUpdater) Listener() api.PushListener {
	l, _ := f.StateProducer.Listener()
	return l
}

// powerEvent is one forwarded power notification.
type powerEvent struct {
	old, new api.PowerState
}

// recordingPowerListener collects forwarded power notifications.
type recordingPowerListener struct {
	mu     sync.Mutex
	events []powerEvent
}

func (r *recordingPowerListener) PowerStateUpdate(oldState, newState api.PowerState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, powerEvent{old: oldState, new: newState})
}

func (r *recordingPowerListener) list() []powerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]powerEvent(nil), r.events...)
}

// recordingDeviceListener collects connection lifecycle events.
type recordingDeviceListener struct {
	lost   []error
	closed int
}

func (r *recordingDeviceListener) ConnectionLost(err error) { r.lost = append(r.lost, err) }
func (r *recordingDeviceListener) ConnectionClosed()        { r.closed++ }

// recordedCall is one observation of a CallRecorder.
type recordedCall struct {
	capability string
	op         api.Operation
	protocol   api.Protocol
	outcome    Outcome
}

// fakeRecorder implements CallRecorder and PowerEventRecorder.
type fakeRecorder struct {
	calls       []recordedCall
	powerEvents []powerEvent
	forwarded   []bool
}

func (r *fakeRecorder) RecordCall(capability string, op api.Operation, protocol api.Protocol, outcome Outcome) {
	r.calls = append(r.calls, recordedCall{capability, op, protocol, outcome})
}

func (r *fakeRecorder) RecordPowerEvent(oldState, newState api.PowerState, forwarded bool) {
	r.powerEvents = append(r.powerEvents, powerEvent{old: oldState, new: newState})
	r.forwarded = append(r.forwarded, forwarded)
}

// fakeSessions implements SessionManager.
type fakeSessions struct {
	closed int
	err    error
}

func (s *fakeSessions) Close(context.Context) error {
	s.closed++
	return s.err
}
