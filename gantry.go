// Package gantry provides lazy dependency providers and low-level route
// handlers for connection-scope dispatch.
//
// The package is a facade: the implementation lives under internal/ and is
// re-exported here so applications only ever import gantry itself.
//
// A dependency is any callable value. Wrap it in a Provide to control when
// it runs and whether its result is memoized:
//
//	provider, err := gantry.NewProvide(newSession, gantry.WithUseCache())
//
// Handlers are plain functions that receive the raw connection primitives.
// They are wrapped with Asgi and registered on a Router, which layers its
// own dependencies, guards and middleware onto each handler at
// registration time:
//
//	handler, err := gantry.Asgi(gantry.WithPath("/health"))(healthCheck)
//	router.Register(handler)
package gantry

import (
	"github.com/xraph/gantry/internal/signature"
)

// Version is the library version.
const Version = "0.1.0"

// Signature describes a callable's parameters and return type.
type Signature = signature.Signature

// Parameter is a single named parameter of a parsed signature.
type Parameter = signature.Parameter

// Namespace maps parameter names to the types used to refine parsing.
type Namespace = signature.Namespace

// TypeDecoder converts raw argument values into handler parameter types.
type TypeDecoder = signature.TypeDecoder

// Partial binds a subset of a callable's arguments ahead of time.
type Partial = signature.Partial

// NewPartial binds arguments to a callable for later invocation.
var NewPartial = signature.NewPartial
