package stream

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/skillsenselab/streamkit/errors"
)

func TestElementAt_SelectsValueAtIndex(t *testing.T) {
	src := FromSlice([]int{10, 20, 30})
	got, err := Collect(context.Background(), ElementAt[int](1)(src))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{20}) {
		t.Errorf("got %v, want [20]", got)
	}
}

func TestElementAt_FirstAndLast(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  int
	}{
		{"first", 0, 10},
		{"last", 2, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := FromSlice([]int{10, 20, 30})
			got, err := Collect(context.Background(), ElementAt[int](tt.index)(src))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("got %v, want [%d]", got, tt.want)
			}
		})
	}
}

func TestElementAt_PastEnd_Fails(t *testing.T) {
	src := FromSlice([]int{10, 20, 30})
	got, err := Collect(context.Background(), ElementAt[int](5)(src))
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
	if len(got) != 0 {
		t.Errorf("expected no values before the error, got %v", got)
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("err = %v, want *AppError", err)
	}
	if appErr.Code != apperrors.ErrCodeOutOfRange {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.ErrCodeOutOfRange)
	}
	if appErr.Details["index"] != 5 || appErr.Details["received"] != 3 {
		t.Errorf("details = %v, want index=5 received=3", appErr.Details)
	}
	if !strings.Contains(appErr.Message, "index 5") {
		t.Errorf("message %q should name the missing index", appErr.Message)
	}
}

func TestElementAt_EmptySource_Fails(t *testing.T) {
	_, err := Collect(context.Background(), ElementAt[int](0)(Empty[int]()))
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeOutOfRange {
		t.Errorf("err = %v, want out-of-range AppError", err)
	}
}

func TestElementAt_NegativeIndex_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for negative index")
		}
		appErr, ok := r.(*apperrors.AppError)
		if !ok {
			t.Fatalf("panic value = %v, want *AppError", r)
		}
		if appErr.Code != apperrors.ErrCodeOutOfRange {
			t.Errorf("code = %s, want %s", appErr.Code, apperrors.ErrCodeOutOfRange)
		}
	}()
	ElementAt[int](-1)
}

func TestElementAtOrDefault_NegativeIndex_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative index")
		}
	}()
	ElementAtOrDefault(-3, 99)
}

func TestElementAtOrDefault_PastEnd_EmitsFallback(t *testing.T) {
	src := FromSlice([]int{10, 20, 30})
	got, err := Collect(context.Background(), ElementAtOrDefault(5, 99)(src))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{99}) {
		t.Errorf("got %v, want [99]", got)
	}
}

func TestElementAtOrDefault_ZeroValueFallback(t *testing.T) {
	src := FromSlice([]int{10, 20, 30})
	got, err := Collect(context.Background(), ElementAtOrDefault(5, 0)(src))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{0}) {
		t.Errorf("zero fallback should be emitted, got %v", got)
	}
}

func TestElementAtOrDefault_WithinRange_IgnoresFallback(t *testing.T) {
	src := FromSlice([]int{10, 20, 30})
	got, err := Collect(context.Background(), ElementAtOrDefault(1, 99)(src))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{20}) {
		t.Errorf("got %v, want [20]", got)
	}
}

func TestElementAtOrDefault_EmptySource_EmitsFallback(t *testing.T) {
	got, err := Collect(context.Background(), ElementAtOrDefault(0, "fallback")(Empty[string]()))
	if err != nil {
		t.Fatal(err)
	}
	if !strSliceEqual(got, []string{"fallback"}) {
		t.Errorf("got %v, want [fallback]", got)
	}
}

func TestElementAt_ErrorPassthrough(t *testing.T) {
	boom := errors.New("source failed")
	src := New(func(_ context.Context, s *Subscriber[int]) {
		s.Next(10)
		s.Error(boom)
	})
	got, err := Collect(context.Background(), ElementAt[int](5)(src))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the source error unchanged", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values, got %v", got)
	}
}

func TestElementAtOrDefault_ErrorBeatsFallback(t *testing.T) {
	boom := errors.New("source failed")
	_, err := Collect(context.Background(), ElementAtOrDefault(5, 99)(Fail[int](boom)))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the source error, not the fallback", err)
	}
}

func TestElementAt_StopsConsumingAfterMatch(t *testing.T) {
	src := newCountingSource(10, 20, 30, 40, 50)
	got, err := Collect(context.Background(), ElementAt[int](1)(src.observable()))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{20}) {
		t.Errorf("got %v, want [20]", got)
	}
	if src.emitted != 2 {
		t.Errorf("source emitted %d values, want 2", src.emitted)
	}
	if src.cancelledAfter != 2 {
		t.Errorf("source observed cancellation after %d values, want 2", src.cancelledAfter)
	}
}

func TestElementAt_MatchOnLastValue(t *testing.T) {
	src := newCountingSource(10, 20, 30)
	got, err := Collect(context.Background(), ElementAt[int](2)(src.observable()))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{30}) {
		t.Errorf("got %v, want [30]", got)
	}
	if src.cancelledAfter != 3 {
		t.Errorf("source observed cancellation after %d values, want 3", src.cancelledAfter)
	}
}

func TestElementAt_SingleTerminal(t *testing.T) {
	src := FromSlice([]int{10, 20, 30})
	terminals := 0
	var got []int
	ElementAt[int](1)(src).Subscribe(context.Background(), Callbacks[int]{
		OnNext:     func(v int) { got = append(got, v) },
		OnComplete: func() { terminals++ },
		OnError:    func(error) { terminals++ },
	})
	if !intSliceEqual(got, []int{20}) {
		t.Errorf("got %v, want [20]", got)
	}
	if terminals != 1 {
		t.Errorf("terminals = %d, want exactly 1", terminals)
	}
}

func TestElementAt_UnsubscribeAfterMatchNoEffect(t *testing.T) {
	src := newCountingSource(10, 20, 30)
	terminals := 0
	var got []int
	sub := ElementAt[int](1)(src.observable()).Subscribe(context.Background(), Callbacks[int]{
		OnNext:     func(v int) { got = append(got, v) },
		OnComplete: func() { terminals++ },
		OnError:    func(error) { terminals++ },
	})

	emittedBefore := src.emitted
	sub.Unsubscribe()
	sub.Unsubscribe()

	if !intSliceEqual(got, []int{20}) {
		t.Errorf("got %v, want [20]", got)
	}
	if terminals != 1 {
		t.Errorf("terminals = %d, want exactly 1", terminals)
	}
	if src.emitted != emittedBefore {
		t.Errorf("late unsubscribe changed source activity: %d -> %d", emittedBefore, src.emitted)
	}
}

func TestElementAt_UnsubscribePropagatesUpstream(t *testing.T) {
	src := newCountingSource(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	sub := NewSubscription()
	cancelling := Tap(func(_ context.Context, v int) error {
		if v == 2 {
			sub.Unsubscribe()
		}
		return nil
	})
	terminals := 0
	var got []int
	out := ElementAt[int](7)(cancelling(src.observable()))
	out.SubscribeWith(context.Background(), sub, Callbacks[int]{
		OnNext:     func(v int) { got = append(got, v) },
		OnComplete: func() { terminals++ },
		OnError:    func(error) { terminals++ },
	})

	if len(got) != 0 {
		t.Errorf("expected no values after cancel, got %v", got)
	}
	if terminals != 0 {
		t.Errorf("cancelled subscription delivered %d terminals, want 0", terminals)
	}
	if src.cancelledAfter != 3 {
		t.Errorf("source observed cancellation after %d values, want 3", src.cancelledAfter)
	}
}

func TestElementAt_OperatorReusable(t *testing.T) {
	second := ElementAt[string](1)

	a, err := Collect(context.Background(), second(FromSlice([]string{"a", "b", "c"})))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Collect(context.Background(), second(FromSlice([]string{"x", "y"})))
	if err != nil {
		t.Fatal(err)
	}
	if !strSliceEqual(a, []string{"b"}) || !strSliceEqual(b, []string{"y"}) {
		t.Errorf("got %v and %v, want [b] and [y]", a, b)
	}
}

func TestElementAt_InPipe(t *testing.T) {
	src := FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	out := Pipe(src,
		Filter(func(n int) bool { return n%2 == 0 }),
		ElementAt[int](2),
	)
	got, err := Collect(context.Background(), out)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{6}) {
		t.Errorf("got %v, want [6]", got)
	}
}
