package memo_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/neziw/releasecheck/pkg/utils/memo"
)

func TestSlot_FetchOnce(t *testing.T) {
	var slot memo.Slot[string]
	var calls int
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	gt.False(t, slot.Fetched())

	for i := 0; i < 3; i++ {
		v, err := slot.Get(context.Background(), fetch)
		gt.NoError(t, err)
		gt.Value(t, v).Equal("value")
	}

	gt.Value(t, calls).Equal(1)
	gt.True(t, slot.Fetched())
}

func TestSlot_EmptyValueIsCached(t *testing.T) {
	var slot memo.Slot[[]int]
	var calls int
	fetch := func(ctx context.Context) ([]int, error) {
		calls++
		return []int{}, nil
	}

	_, err := slot.Get(context.Background(), fetch)
	gt.NoError(t, err)
	v, err := slot.Get(context.Background(), fetch)
	gt.NoError(t, err)

	gt.Number(t, len(v)).Equal(0)
	gt.Value(t, calls).Equal(1)
}

func TestSlot_ErrorIsNotCached(t *testing.T) {
	var slot memo.Slot[int]
	var calls int
	fetch := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("temporary failure")
		}
		return 42, nil
	}

	_, err := slot.Get(context.Background(), fetch)
	gt.Error(t, err)
	gt.False(t, slot.Fetched())

	v, err := slot.Get(context.Background(), fetch)
	gt.NoError(t, err)
	gt.Value(t, v).Equal(42)
	gt.Value(t, calls).Equal(2)
}

func TestSlot_ConcurrentFirstCall(t *testing.T) {
	var slot memo.Slot[int]
	var calls atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := slot.Get(context.Background(), fetch)
			if err != nil || v != 7 {
				t.Errorf("Get() = %d, %v", v, err)
			}
		}()
	}
	wg.Wait()

	gt.Value(t, calls.Load()).Equal(int32(1))
}
