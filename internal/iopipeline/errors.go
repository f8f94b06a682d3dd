package iopipeline

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
)

func StepError(step string, err error) error {
	msg := "Step <em>%s</em> failed"
	vars := []any{step}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineStepError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: step %s: %w", fn.Name(), step, err),
	}
}

// TimeoutError is returned when a step runs out of time.
func TimeoutError(step string, limit time.Duration) error {
	msg := `Step <em>%s</em> timed out after %s

Increase <em>pipeline.step_timeout_sec</em> in config.yaml if the data
set has grown.`
	vars := []any{step, limit.String()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineTimeoutError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: step %s exceeded %s",
			fn.Name(), step, limit),
	}
}
