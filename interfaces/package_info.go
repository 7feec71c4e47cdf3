// Package interfaces contains the public types that are shared between the client builder
// and pluggable components.
//
// These types are defined separately from the built-in component implementations in the
// rcomponents package so that applications can provide their own implementations, for
// custom transports, custom configuration sources, or test fixtures.
package interfaces
