package board

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectLocksSerializePerProject(t *testing.T) {
	locks := newProjectLocks()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.acquire("p1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
}

func TestProjectLocksIndependentProjects(t *testing.T) {
	locks := newProjectLocks()

	// Holding one project's lock must not block another project.
	unlock1 := locks.acquire("p1")
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := locks.acquire("p2")
		unlock2()
		close(done)
	}()

	<-done
}
