package lazy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_ComputesOnce(t *testing.T) {
	calls := 0
	v := New(func() (int, error) {
		calls++
		return 42, nil
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := v.Get()
			assert.NoError(t, err)
			assert.Equal(t, 42, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestValue_KeepsError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	v := New(func() (string, error) {
		calls++
		return "", boom
	})

	_, err := v.Get()
	assert.ErrorIs(t, err, boom)
	_, err = v.Get()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
