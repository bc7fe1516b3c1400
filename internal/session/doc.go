// Package session provides the network session shared by all protocol
// backends of a device. The relay Facade owns one Manager and releases it
// when the Facade closes, independently of the backends' own close routines.
package session
