package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediarelay/internal/api"
)

func testDevice() api.DeviceConfig {
	return api.DeviceConfig{
		Name:    "Living Room",
		Address: "10.0.0.2",
		Info:    api.DeviceInfo{Model: "Gen4", OperatingSystem: "TvOS", Version: "17.1"},
		Services: []api.Service{
			{Protocol: api.ProtocolAirPlay, Identifier: "airplay-id", Port: 7000},
			{Protocol: api.ProtocolMRP, Identifier: "mrp-id", Port: 49152},
		},
	}
}

// lifecycle builds connect and close routines that append to a shared log.
func lifecycle(p api.Protocol, log *[]string, connectErr, closeErr error) (func(context.Context) error, func() error) {
	connect := func(context.Context) error {
		*log = append(*log, "connect "+p.String())
		return connectErr
	}
	closeFn := func() error {
		*log = append(*log, "close "+p.String())
		return closeErr
	}
	return connect, closeFn
}

func TestFacade_ConnectInRegistrationOrder(t *testing.T) {
	var log []string
	f := NewFacade(testDevice(), nil)
	for _, p := range []api.Protocol{api.ProtocolAirPlay, api.ProtocolMRP, api.ProtocolCompanion} {
		connect, closeFn := lifecycle(p, &log, nil, nil)
		require.NoError(t, f.AddProtocol(SetupData{Protocol: p, Connect: connect, Close: closeFn}))
	}

	require.NoError(t, f.Connect(context.Background()))
	assert.Equal(t, []string{"connect AirPlay", "connect MRP", "connect Companion"}, log)
}

func TestFacade_ConnectStopsAtFirstFailure(t *testing.T) {
	var log []string
	boom := errors.New("handshake failed")
	f := NewFacade(testDevice(), nil)

	c1, x1 := lifecycle(api.ProtocolMRP, &log, nil, nil)
	c2, x2 := lifecycle(api.ProtocolAirPlay, &log, boom, nil)
	c3, x3 := lifecycle(api.ProtocolCompanion, &log, nil, nil)
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolMRP, Connect: c1, Close: x1}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay, Connect: c2, Close: x2}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolCompanion, Connect: c3, Close: x3}))

	err := f.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsConnectionError(err))
	assert.ErrorIs(t, err, boom)

	var connErr *api.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, api.ProtocolAirPlay, connErr.Protocol)

	// No rollback by default: MRP stays connected.
	assert.Equal(t, []string{"connect MRP", "connect AirPlay"}, log)
}

func TestFacade_ConnectRollbackPolicy(t *testing.T) {
	var log []string
	f := NewFacade(testDevice(), nil, WithRollbackOnConnectFailure(true))

	c1, x1 := lifecycle(api.ProtocolMRP, &log, nil, nil)
	c2, x2 := lifecycle(api.ProtocolCompanion, &log, nil, nil)
	c3, x3 := lifecycle(api.ProtocolAirPlay, &log, errors.New("boom"), nil)
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolMRP, Connect: c1, Close: x1}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolCompanion, Connect: c2, Close: x2}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay, Connect: c3, Close: x3}))

	require.Error(t, f.Connect(context.Background()))
	assert.Equal(t, []string{
		"connect MRP", "connect Companion", "connect AirPlay",
		"close Companion", "close MRP",
	}, log)
}

func TestFacade_CloseAttemptsEveryRoutine(t *testing.T) {
	var log []string
	sessions := &fakeSessions{}
	listener := &recordingDeviceListener{}
	f := NewFacade(testDevice(), sessions)
	f.SetListener(listener)

	failing := errors.New("socket already gone")
	c1, x1 := lifecycle(api.ProtocolMRP, &log, nil, failing)
	c2, x2 := lifecycle(api.ProtocolAirPlay, &log, nil, nil)
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolMRP, Connect: c1, Close: x1}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay, Connect: c2, Close: x2}))
	require.NoError(t, f.AddProtocol(SetupData{
		Protocol: api.ProtocolCompanion,
		Close:    func() error { log = append(log, "close Companion"); panic("bad backend") },
	}))

	err := f.Close(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, failing)
	assert.Contains(t, err.Error(), "panic while closing Companion")

	assert.Equal(t, []string{"close MRP", "close AirPlay", "close Companion"}, log)
	assert.Equal(t, 1, sessions.closed)
	assert.Equal(t, 1, listener.closed)

	assert.ErrorIs(t, f.Close(context.Background()), api.ErrFacadeClosed)
	assert.Equal(t, 1, sessions.closed, "session manager is released once")
	assert.Len(t, log, 3, "close routines run exactly once")
}

func TestFacade_UseAfterClose(t *testing.T) {
	f := NewFacade(testDevice(), nil)
	require.NoError(t, f.Close(context.Background()))

	assert.ErrorIs(t, f.Connect(context.Background()), api.ErrFacadeClosed)
	assert.ErrorIs(t, f.AddProtocol(SetupData{Protocol: api.ProtocolMRP}), api.ErrFacadeClosed)
}

func TestFacade_Service(t *testing.T) {
	t.Run("no protocols", func(t *testing.T) {
		f := NewFacade(testDevice(), nil)
		_, err := f.Service()
		assert.ErrorIs(t, err, api.ErrNoProtocols)
	})

	t.Run("highest priority configured service wins", func(t *testing.T) {
		f := NewFacade(testDevice(), nil)
		require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay}))
		require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolMRP}))

		svc, err := f.Service()
		require.NoError(t, err)
		assert.Equal(t, "mrp-id", svc.Identifier)
	})

	t.Run("service advertised by setup data", func(t *testing.T) {
		f := NewFacade(testDevice(), nil)
		require.NoError(t, f.AddProtocol(SetupData{
			Protocol: api.ProtocolDMAP,
			Service:  &api.Service{Protocol: api.ProtocolDMAP, Identifier: "dmap-id"},
		}))
		require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay}))

		svc, err := f.Service()
		require.NoError(t, err)
		assert.Equal(t, "dmap-id", svc.Identifier)
	})

	t.Run("registered protocols without service is a bug", func(t *testing.T) {
		f := NewFacade(api.DeviceConfig{Name: "bare"}, nil)
		require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolRAOP}))

		assert.PanicsWithError(t, "invariant violation: no service found for protocols [RAOP]", func() {
			_, _ = f.Service()
		})
	})
}

func TestFacade_UnlistedProtocolRanksLastEverywhere(t *testing.T) {
	ctx := context.Background()

	t.Run("serves when nothing listed does", func(t *testing.T) {
		f := NewFacade(testDevice(), nil, WithPriorities(api.PriorityList{api.ProtocolMRP}))
		airplayStream := &fakeStream{}
		require.NoError(t, f.AddProtocol(SetupData{
			Protocol:      api.ProtocolAirPlay,
			Stream:        Bind[api.Stream](airplayStream, api.OpPlayURL),
			Features:      []api.FeatureName{api.FeaturePlayURL},
			FeatureSource: &fakeFeatures{state: api.FeatureStateAvailable},
		}))

		assert.Equal(t, api.FeatureStateAvailable, f.Features().GetFeature(api.FeaturePlayURL).State)
		holder, ok := f.Features().Holder(api.FeaturePlayURL)
		require.True(t, ok)
		assert.Equal(t, api.ProtocolAirPlay, holder)

		svc, err := f.Service()
		require.NoError(t, err)
		assert.Equal(t, "airplay-id", svc.Identifier)

		require.NoError(t, f.Stream().PlayURL(ctx, "http://example.com/a.mp4", api.PlayURLOptions{}))
		assert.Equal(t, []string{"play_url"}, airplayStream.list())

		// A listed protocol takes over every capability it brings.
		mrpStream := &fakeStream{}
		require.NoError(t, f.AddProtocol(SetupData{
			Protocol:      api.ProtocolMRP,
			Stream:        Bind[api.Stream](mrpStream, api.OpPlayURL),
			Features:      []api.FeatureName{api.FeaturePlayURL},
			FeatureSource: &fakeFeatures{state: api.FeatureStateUnavailable},
		}))

		holder, _ = f.Features().Holder(api.FeaturePlayURL)
		assert.Equal(t, api.ProtocolMRP, holder)
		svc, err = f.Service()
		require.NoError(t, err)
		assert.Equal(t, "mrp-id", svc.Identifier)
		require.NoError(t, f.Stream().PlayURL(ctx, "http://example.com/b.mp4", api.PlayURLOptions{}))
		assert.Equal(t, []string{"play_url"}, mrpStream.list())
		assert.Equal(t, 1, airplayStream.count())
	})

	t.Run("unlisted protocols keep their add order", func(t *testing.T) {
		f := NewFacade(testDevice(), nil, WithPriorities(api.PriorityList{api.ProtocolMRP}))
		raopService := &api.Service{Protocol: api.ProtocolRAOP, Identifier: "raop-id"}
		require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolRAOP, Service: raopService}))

		airplayStream := &fakeStream{}
		require.NoError(t, f.AddProtocol(SetupData{
			Protocol:      api.ProtocolAirPlay,
			Stream:        Bind[api.Stream](airplayStream, api.OpPlayURL),
			Features:      []api.FeatureName{api.FeaturePlayURL},
			FeatureSource: &fakeFeatures{state: api.FeatureStateAvailable},
		}))

		// RAOP was added first, so once it brings a stream it outranks AirPlay.
		raopStream := &fakeStream{}
		require.NoError(t, f.AddProtocol(SetupData{
			Protocol:      api.ProtocolRAOP,
			Service:       raopService,
			Stream:        Bind[api.Stream](raopStream, api.OpPlayURL),
			Features:      []api.FeatureName{api.FeaturePlayURL},
			FeatureSource: &fakeFeatures{state: api.FeatureStateUnknown},
		}))

		holder, _ := f.Features().Holder(api.FeaturePlayURL)
		assert.Equal(t, api.ProtocolRAOP, holder)
		svc, err := f.Service()
		require.NoError(t, err)
		assert.Equal(t, "raop-id", svc.Identifier)
		require.NoError(t, f.Stream().PlayURL(ctx, "http://example.com/c.mp4", api.PlayURLOptions{}))
		assert.Equal(t, 1, raopStream.count())
		assert.Equal(t, 0, airplayStream.count())
	})
}

func TestFacade_AddProtocolReplacesContributions(t *testing.T) {
	var log []string
	f := NewFacade(testDevice(), nil)

	oldStream := &fakeStream{}
	oldFeatures := &fakeFeatures{state: api.FeatureStateAvailable}
	c1, x1 := lifecycle(api.ProtocolMRP, &log, nil, nil)
	require.NoError(t, f.AddProtocol(SetupData{
		Protocol:      api.ProtocolMRP,
		Connect:       c1,
		Close:         x1,
		Stream:        Bind[api.Stream](oldStream, api.OpPlayURL),
		Features:      []api.FeatureName{api.FeaturePlayURL, api.FeatureTitle},
		FeatureSource: oldFeatures,
	}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay}))

	newRemote := &fakeRemote{}
	newFeatures := &fakeFeatures{state: api.FeatureStateUnavailable}
	c2, x2 := lifecycle(api.ProtocolMRP, &log, nil, nil)
	require.NoError(t, f.AddProtocol(SetupData{
		Protocol:      api.ProtocolMRP,
		Connect:       c2,
		Close:         x2,
		RemoteControl: Bind[api.RemoteControl](newRemote, api.OpPlay),
		Features:      []api.FeatureName{api.FeaturePlay},
		FeatureSource: newFeatures,
	}))

	assert.Equal(t, []api.Protocol{api.ProtocolMRP, api.ProtocolAirPlay}, f.Protocols(), "replaced protocol keeps its place")

	err := f.Stream().PlayURL(context.Background(), "http://example.com/x", api.PlayURLOptions{})
	assert.True(t, api.IsUnsupported(err), "old stream contribution is gone")
	assert.Equal(t, api.FeatureStateUnsupported, f.Features().GetFeature(api.FeatureTitle).State)
	assert.Equal(t, api.FeatureStateUnavailable, f.Features().GetFeature(api.FeaturePlay).State)

	require.NoError(t, f.RemoteControl().Play(context.Background()))
	assert.Equal(t, []string{"play"}, newRemote.list())
}

func TestFacade_EndToEndRelay(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	f := NewFacade(testDevice(), &fakeSessions{}, WithCallRecorder(rec), WithID("session-1"))
	assert.Equal(t, "session-1", f.ID())

	mrpPower := &fakePower{state: api.PowerStateOn}
	mrpPush := &fakePushUpdater{}
	require.NoError(t, f.AddProtocol(SetupData{
		Protocol:      api.ProtocolMRP,
		RemoteControl: BindAll[api.RemoteControl](&fakeRemote{}, api.RemoteControlOperations),
		Metadata:      Bind[api.Metadata](&fakeMetadata{playing: api.Playing{Title: "Song"}}, api.OpPlaying),
		Power:         BindAll[api.Power](mrpPower, api.PowerOperations),
		PushUpdater:   mrpPush,
		Features:      []api.FeatureName{api.FeaturePlay},
		FeatureSource: &fakeFeatures{state: api.FeatureStateAvailable},
	}))

	companionApps := &fakeApps{}
	companionPower := &fakePower{}
	require.NoError(t, f.AddProtocol(SetupData{
		Protocol: api.ProtocolCompanion,
		Apps:     BindAll[api.Apps](companionApps, api.AppsOperations),
		Power:    Bind[api.Power](companionPower),
	}))

	listener := &recordingPowerListener{}
	f.Power().SetListener(listener)

	require.NoError(t, f.RemoteControl().Play(ctx))
	playing, err := f.Metadata().Playing(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Song", playing.Title)
	require.NoError(t, f.Apps().LaunchApp(ctx, "com.example.tv"))
	assert.Equal(t, []string{"com.example.tv"}, companionApps.launched)
	assert.Equal(t, api.PowerStateOn, f.Power().PowerState())
	assert.Same(t, mrpPush, f.PushUpdater())
	assert.Equal(t, api.FeatureStateAvailable, f.Features().GetFeature(api.FeaturePlay).State)

	mrpPower.emit(api.PowerStateOn, api.PowerStateOff)
	companionPower.emit(api.PowerStateOn, api.PowerStateOff)
	assert.Len(t, listener.list(), 2)

	assert.True(t, api.IsUnsupported(f.Stream().PlayURL(ctx, "http://example.com/x", api.PlayURLOptions{})))
	assert.True(t, api.IsUnsupported(f.Stream().Close()))

	assert.NotEmpty(t, rec.calls)
	assert.Len(t, rec.powerEvents, 2)
	assert.Equal(t, "Gen4, TvOS 17.1", f.DeviceInfo().String())
}

func TestFacade_ConnectionLostIsForwarded(t *testing.T) {
	f := NewFacade(testDevice(), nil)
	listener := &recordingDeviceListener{}
	f.SetListener(listener)

	f.ConnectionLost(api.ProtocolMRP, errors.New("reset by peer"))

	require.Len(t, listener.lost, 1)
	assert.True(t, api.IsConnectionError(listener.lost[0]))
}

func TestFacade_GeneratesID(t *testing.T) {
	a := NewFacade(testDevice(), nil)
	b := NewFacade(testDevice(), nil)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestFacade_CustomPriorities(t *testing.T) {
	f := NewFacade(testDevice(), nil, WithPriorities(api.PriorityList{api.ProtocolAirPlay, api.ProtocolMRP}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolMRP}))
	require.NoError(t, f.AddProtocol(SetupData{Protocol: api.ProtocolAirPlay}))

	svc, err := f.Service()
	require.NoError(t, err)
	assert.Equal(t, "airplay-id", svc.Identifier)
}

func TestSetupData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		setup   SetupData
		wantErr bool
	}{
		{name: "valid", setup: SetupData{Protocol: api.ProtocolMRP}},
		{name: "zero protocol", setup: SetupData{}, wantErr: true},
		{name: "unknown protocol", setup: SetupData{Protocol: api.Protocol(42)}, wantErr: true},
		{name: "features without source", setup: SetupData{Protocol: api.ProtocolMRP, Features: []api.FeatureName{api.FeaturePlay}}, wantErr: true},
		{name: "foreign service", setup: SetupData{Protocol: api.ProtocolMRP, Service: &api.Service{Protocol: api.ProtocolDMAP}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
