package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"wp-starter/internal/logger"
)

type trace struct {
	mu  sync.Mutex
	ran []string
}

func (tr *trace) add(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.ran = append(tr.ran, name)
}

func record(name string, err error) Step[*trace] {
	return Step[*trace]{
		Name: name,
		Run: func(ctx context.Context, tr *trace) error {
			tr.add(name)
			return err
		},
	}
}

type eventLog struct {
	events []string
}

func (e *eventLog) StepStarted(index int, name string) {
	e.events = append(e.events, "start "+name)
}

func (e *eventLog) StepFinished(res Result) {
	status := "ok"
	if res.Err != nil {
		status = "err"
	}
	e.events = append(e.events, "finish "+res.Name+" "+status)
}

func TestRunCompletesInOrder(t *testing.T) {
	tr := &trace{}
	obs := &eventLog{}
	r := New([]Step[*trace]{record("a", nil), record("b", nil), record("c", nil)}, obs)

	if got := r.State(); got.Phase != Pending || got.Index != 0 || got.Step != "a" {
		t.Fatalf("initial state = %+v", got)
	}
	if err := r.Run(context.Background(), tr); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if strings.Join(tr.ran, ",") != "a,b,c" {
		t.Fatalf("ran = %v", tr.ran)
	}
	if got := r.State(); got.Phase != Completed {
		t.Fatalf("final phase = %s", got.Phase)
	}
	want := "start a,finish a ok,start b,finish b ok,start c,finish c ok"
	if strings.Join(obs.events, ",") != want {
		t.Fatalf("events = %v", obs.events)
	}
	if len(r.Results()) != 3 {
		t.Fatalf("results = %d, want 3", len(r.Results()))
	}
}

func TestFatalFailureStopsRun(t *testing.T) {
	boom := errors.New("download failed")
	tr := &trace{}
	steps := []Step[*trace]{record("fetch-wordpress", nil), record("fetch-bootstrap", boom), record("create-source-dirs", nil)}
	r := New(steps)

	err := r.Run(context.Background(), tr)

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if stepErr.Index != 1 || stepErr.Name != "fetch-bootstrap" || !errors.Is(err, boom) {
		t.Fatalf("unexpected step error %+v", stepErr)
	}
	if strings.Join(tr.ran, ",") != "fetch-wordpress,fetch-bootstrap" {
		t.Fatalf("steps after the fatal failure ran: %v", tr.ran)
	}
	st := r.State()
	if st.Phase != Failed || st.Index != 1 || !errors.Is(st.Err, boom) {
		t.Fatalf("state = %+v", st)
	}
}

func TestContinueFailureAdvances(t *testing.T) {
	tr := &trace{}
	dbErr := errors.New("connection refused")
	steps := []Step[*trace]{record("render-project-files", nil), record("create-database", dbErr), record("npm-install", nil)}
	steps[1].Policy = Continue
	r := New(steps)

	if err := r.Run(context.Background(), tr); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Join(tr.ran, ",") != "render-project-files,create-database,npm-install" {
		t.Fatalf("ran = %v", tr.ran)
	}
	res := r.Results()
	if !errors.Is(res[1].Err, dbErr) || res[1].Policy != Continue {
		t.Fatalf("result[1] = %+v", res[1])
	}
	if r.State().Phase != Completed {
		t.Fatalf("phase = %s", r.State().Phase)
	}
}

func TestRunWaitsForAsynchronousCompletion(t *testing.T) {
	tr := &trace{}
	slow := Step[*trace]{
		Name: "slow",
		Run: func(ctx context.Context, tr *trace) error {
			time.Sleep(20 * time.Millisecond)
			tr.add("slow")
			return nil
		},
	}
	r := New([]Step[*trace]{slow, record("next", nil)})
	if err := r.Run(context.Background(), tr); err != nil {
		t.Fatal(err)
	}
	if strings.Join(tr.ran, ",") != "slow,next" {
		t.Fatalf("next started before slow finished: %v", tr.ran)
	}
}

func TestStateObservedWhileRunning(t *testing.T) {
	var r *Runner[*trace]
	var seen State
	inspect := Step[*trace]{
		Name: "inspect",
		Run: func(ctx context.Context, tr *trace) error {
			seen = r.State()
			return nil
		},
	}
	r = New([]Step[*trace]{record("first", nil), inspect})
	if err := r.Run(context.Background(), &trace{}); err != nil {
		t.Fatal(err)
	}
	if seen.Phase != Running || seen.Index != 1 || seen.Step != "inspect" {
		t.Fatalf("state during step = %+v", seen)
	}
}

func TestCancelledContextStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tr := &trace{}
	blocking := Step[*trace]{
		Name:   "npm-install",
		Policy: Continue,
		Run: func(ctx context.Context, tr *trace) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		},
	}
	r := New([]Step[*trace]{blocking, record("grunt-build", nil)})

	err := r.Run(ctx, tr)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(tr.ran) != 0 {
		t.Fatalf("steps ran after cancellation: %v", tr.ran)
	}
	if r.State().Phase != Failed {
		t.Fatalf("phase = %s", r.State().Phase)
	}
}

func TestPanickingStepFails(t *testing.T) {
	bad := Step[*trace]{Name: "bad", Run: func(ctx context.Context, tr *trace) error { panic("nil map") }}
	r := New([]Step[*trace]{bad})
	err := r.Run(context.Background(), &trace{})
	if err == nil || !strings.Contains(err.Error(), "panic: nil map") {
		t.Fatalf("expected panic converted to error, got %v", err)
	}
}

func TestEmptyPipelineCompletes(t *testing.T) {
	r := New[*trace](nil)
	if err := r.Run(context.Background(), &trace{}); err != nil {
		t.Fatal(err)
	}
	if r.State().Phase != Completed {
		t.Fatalf("phase = %s", r.State().Phase)
	}
}

func TestLogObserver(t *testing.T) {
	logger.Init(false, true)
	var buf bytes.Buffer
	obs := LogObserver{Log: logger.New(&buf)}

	obs.StepStarted(0, "fetch-wordpress")
	obs.StepFinished(Result{Name: "fetch-wordpress"})
	obs.StepFinished(Result{Name: "create-database", Policy: Continue, Err: errors.New("refused")})
	obs.StepFinished(Result{Name: "grunt-build", Err: errors.New("exit status 1")})
	obs.StepFinished(Result{Name: "npm-install", Policy: Continue, Err: context.Canceled})

	out := buf.String()
	for _, want := range []string{
		"run fetch-wordpress",
		"ok fetch-wordpress (0s)",
		"skip create-database failed, continuing: refused",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, name := range []string{"grunt-build", "npm-install"} {
		if strings.Contains(out, name) {
			t.Errorf("run-ending failure of %s printed by the observer:\n%s", name, out)
		}
	}
}

func TestPhaseAndPolicyStrings(t *testing.T) {
	if Completed.String() != "completed" || Phase(9).String() != "phase(9)" {
		t.Fatal("unexpected phase strings")
	}
	if Fatal.String() != "fatal" || Continue.String() != "continue" {
		t.Fatal("unexpected policy strings")
	}
}
