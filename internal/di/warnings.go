package di

import (
	"reflect"
	"runtime"

	"go.uber.org/zap"

	"github.com/xraph/gantry/internal/logger"
)

// Advisory conditions around sync-to-thread are warnings, not failures:
// construction still succeeds and a mismatched explicit request is ignored.

func warnImplicitSyncToThread(dependency any) {
	logger.GetGlobalLogger().Warn(
		"synchronous dependency runs on the caller's goroutine by default and may block it; set WithSyncToThread explicitly",
		zap.String("dependency", callableName(dependency)),
	)
}

func warnSyncToThreadWithGenerator(dependency any) {
	logger.GetGlobalLogger().Warn(
		"WithSyncToThread has no effect on a generator dependency and is ignored",
		zap.String("dependency", callableName(dependency)),
	)
}

func warnSyncToThreadWithAsyncCallable(dependency any) {
	logger.GetGlobalLogger().Warn(
		"WithSyncToThread has no effect on an asynchronous dependency and is ignored",
		zap.String("dependency", callableName(dependency)),
	)
}

// callableName derives a readable identifier for a dependency, for log
// output only.
func callableName(dependency any) string {
	if dependency == nil {
		return "<nil>"
	}
	v := reflect.ValueOf(dependency)
	if v.Kind() == reflect.Func {
		if fn := runtime.FuncForPC(v.Pointer()); fn != nil {
			return fn.Name()
		}
		return v.Type().String()
	}
	return reflect.TypeOf(dependency).String()
}
