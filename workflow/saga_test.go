package workflow

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSagaRunsAllSteps(t *testing.T) {
	var ran []string
	s := Saga{
		Name: "test",
		Steps: []Step{
			{Name: "a", Run: func(ctx context.Context) error { ran = append(ran, "a"); return nil }},
			{Name: "b", Run: func(ctx context.Context) error { ran = append(ran, "b"); return nil }},
		},
	}

	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ran, []string{"a", "b"}) {
		t.Errorf("ran = %v", ran)
	}
}

func TestSagaCompensatesInReverseOrder(t *testing.T) {
	var events []string
	boom := errors.New("boom")

	s := Saga{
		Name: "test",
		Steps: []Step{
			{
				Name:       "a",
				Run:        func(ctx context.Context) error { events = append(events, "run a"); return nil },
				Compensate: func(ctx context.Context) error { events = append(events, "undo a"); return nil },
			},
			{
				Name:       "b",
				Run:        func(ctx context.Context) error { events = append(events, "run b"); return nil },
				Compensate: func(ctx context.Context) error { events = append(events, "undo b"); return nil },
			},
			{
				Name: "c",
				Run:  func(ctx context.Context) error { return boom },
			},
		},
	}

	err := s.Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}

	want := []string{"run a", "run b", "undo b", "undo a"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestSagaFailedStepNotCompensated(t *testing.T) {
	var undone []string
	s := Saga{
		Name: "test",
		Steps: []Step{
			{
				Name: "a",
				Run:  func(ctx context.Context) error { return errors.New("fail") },
				Compensate: func(ctx context.Context) error {
					undone = append(undone, "a")
					return nil
				},
			},
		},
	}

	if err := s.Execute(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(undone) != 0 {
		t.Errorf("failed step was compensated: %v", undone)
	}
}

func TestSagaNilCompensateSkipped(t *testing.T) {
	s := Saga{
		Name: "test",
		Steps: []Step{
			{Name: "a", Run: func(ctx context.Context) error { return nil }},
			{Name: "b", Run: func(ctx context.Context) error { return errors.New("fail") }},
		},
	}
	if err := s.Execute(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSagaCompensationFailureDoesNotMaskError(t *testing.T) {
	boom := errors.New("boom")
	s := Saga{
		Name: "test",
		Steps: []Step{
			{
				Name:       "a",
				Run:        func(ctx context.Context) error { return nil },
				Compensate: func(ctx context.Context) error { return errors.New("undo failed") },
			},
			{Name: "b", Run: func(ctx context.Context) error { return boom }},
		},
	}

	err := s.Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom preserved", err)
	}
}
