// Package relay composes partial protocol backends into complete capability
// interfaces for one device.
//
// A device can be reached over several protocols. Each protocol backend
// implements only part of the capability surface (remote control, metadata,
// power, streaming, apps, features) and declares exactly which operations it
// provides. The relay picks, per call, the single backend that serves it.
//
// # Resolution
//
// Registry[T] binds backends implementing capability T to protocols. A call
// to operation op is served by the first protocol in the priority list whose
// declared operations contain op:
//
//	reg := relay.NewRegistry[api.Stream](api.CapabilityStream, api.StreamOperations, priorities)
//	reg.Register(api.ProtocolAirPlay, airplay, api.OpPlayURL)
//	err := reg.Relay(api.OpPlayURL, func(s api.Stream) error {
//	    return s.PlayURL(ctx, url, opts)
//	})
//
// When no protocol declares op, method-style calls fail with
// *api.UnsupportedError and property-style reads return a documented
// default. A failing backend fails the call; lower priority backends are
// never tried as a fallback.
//
// # Features
//
// FeatureAggregator maps each feature name to the highest priority protocol
// that declared it and asks that protocol for the live state on every
// query.
//
// # Power notifications
//
// PowerBridge relays power operations and forwards every power transition
// reported by any backend to one external listener, unmodified.
//
// # Facade
//
// Facade owns one relay per capability plus the feature aggregator and
// drives the lifecycle of all added protocols:
//
//	f := relay.NewFacade(device, sessions)
//	_ = f.AddProtocol(setup)
//	if err := f.Connect(ctx); err != nil { ... }
//	defer f.Close(ctx)
//	_ = f.RemoteControl().Play(ctx)
//
// Setup and use are separate phases. Registries do no locking, so protocols
// must not be added while calls are being relayed.
package relay
