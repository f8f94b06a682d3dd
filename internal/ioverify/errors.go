package ioverify

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gn"
)

func QueryError(path, check string, err error) error {
	msg := "Cannot verify <em>%s</em> (%s)"
	vars := []any{path, check}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.VerifyQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s check on %s failed: %w",
			fn.Name(), check, path, err),
	}
}

// FailedError reports a database that does not pass verification. The
// file is left in place for inspection.
func FailedError(path string, r *lifecycle.Report) error {
	var failed []string
	for _, c := range r.Checks {
		if c.Fatal && !c.Passed {
			failed = append(failed, c.Name)
		}
	}
	msg := `Database verification FAILED for <em>%s</em>

<em>Failed checks:</em> %s
<em>Places:</em> %d, <em>FTS entries:</em> %d`
	vars := []any{path, strings.Join(failed, ", "), r.PlacesCount, r.FTSCount}
	return &gn.Error{
		Code: errcode.VerifyFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("verification failed: %s",
			strings.Join(failed, ", ")),
	}
}
