package usecase_test

import (
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemon-dev/mnemon/pkg/usecase"
)

func TestUserLocks_MutualExclusion(t *testing.T) {
	locks := usecase.NewUserLocks()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Lock("u-001")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	gt.Number(t, counter).Equal(workers)
}

func TestUserLocks_DistinctUsersDoNotBlock(t *testing.T) {
	locks := usecase.NewUserLocks()

	releaseA := locks.Lock("u-a")
	defer releaseA()

	// Holding u-a must not block u-b
	done := make(chan struct{})
	go func() {
		release := locks.Lock("u-b")
		release()
		close(done)
	}()
	<-done
}

func TestUserLocks_ReleaseAllowsReacquire(t *testing.T) {
	locks := usecase.NewUserLocks()

	release := locks.Lock("u-001")
	release()

	release = locks.Lock("u-001")
	release()
}
