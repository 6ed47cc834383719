// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/runnables-cli/runnables/internal/testutil"
)

func TestVirtualRuntime_ExecuteCapture(t *testing.T) {
	t.Parallel()

	dir := testutil.TempDir(t)
	ctx := NewExecutionContext(context.Background(), `echo "hi $WHO"; pwd`, dir)
	ctx.ExtraEnv["WHO"] = "there"

	res := NewVirtualRuntime().ExecuteCapture(ctx)
	if !res.Success() {
		t.Fatalf("ExecuteCapture() = %+v", res)
	}
	if want := "hi there\n" + dir + "\n"; res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestVirtualRuntime_CdChain(t *testing.T) {
	t.Parallel()

	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{"sub dir/": ""})

	res := NewVirtualRuntime().ExecuteCapture(NewExecutionContext(context.Background(), `cd 'sub dir' && pwd`, root))
	if !res.Success() {
		t.Fatalf("ExecuteCapture() = %+v", res)
	}
	if !strings.HasSuffix(strings.TrimSpace(res.Output), "sub dir") {
		t.Errorf("output = %q", res.Output)
	}
}

func TestVirtualRuntime_ExitStatus(t *testing.T) {
	t.Parallel()

	res := NewVirtualRuntime().ExecuteCapture(NewExecutionContext(context.Background(), "echo before; exit 3", ""))
	if res.ExitCode != 3 || res.Error != nil {
		t.Errorf("result = %+v, want exit 3 without error", res)
	}
	if res.Output != "before\n" {
		t.Errorf("output = %q", res.Output)
	}
}

func TestVirtualRuntime_ParseError(t *testing.T) {
	t.Parallel()

	rt := NewVirtualRuntime()
	ctx := NewExecutionContext(context.Background(), "echo 'unterminated", "")
	if err := rt.Validate(ctx); err == nil {
		t.Error("Validate() should reject unparsable commands")
	}
	res := rt.Execute(ctx)
	if res.Error == nil || res.ExitCode != 1 {
		t.Errorf("Execute() = %+v", res)
	}
}

func TestVirtualRuntime_Streams(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	ctx := NewExecutionContext(context.Background(), "read line; echo \"got $line\"; echo warn >&2", "")
	ctx.Stdin = strings.NewReader("input\n")
	ctx.Stdout = &stdout
	ctx.Stderr = &stderr

	if res := NewVirtualRuntime().Execute(ctx); !res.Success() {
		t.Fatalf("Execute() = %+v", res)
	}
	if stdout.String() != "got input\n" || stderr.String() != "warn\n" {
		t.Errorf("stdout %q stderr %q", stdout.String(), stderr.String())
	}
}
