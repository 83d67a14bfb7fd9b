package gantry

import (
	"github.com/xraph/gantry/internal/router"
)

// Router is a configuration layer that handlers register against.
type Router = router.Router

// RouterOption configures router construction.
type RouterOption = router.RouterOption

// Config is the YAML-backed router configuration.
type Config = router.Config

// Router constructors.
var (
	NewRouter           = router.NewRouter
	NewRouterFromConfig = router.NewRouterFromConfig
	ParseConfig         = router.ParseConfig
)

// Router construction options. Options that share a concern with handler
// options carry a Router prefix to keep the two sets distinct.
var (
	WithRouterPath               = router.WithPath
	WithRouterName               = router.WithName
	WithRouterDependency         = router.WithDependency
	WithRouterGuards             = router.WithGuards
	WithRouterMiddleware         = router.WithMiddleware
	WithRouterExceptionHandler   = router.WithExceptionHandler
	WithRouterOpt                = router.WithOpt
	WithRouterSignatureNamespace = router.WithSignatureNamespace
	WithRouterParameters         = router.WithParameters
	WithRouterTypeDecoders       = router.WithTypeDecoders
	WithRouterTypeEncoders       = router.WithTypeEncoders
	WithRouterSignatureTypes     = router.WithSignatureTypes

	WithPlugins       = router.WithPlugins
	WithDataTransform = router.WithDataTransform
	WithLogger        = router.WithLogger
)
