package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskQueueOrder(t *testing.T) {
	var q TaskQueue
	var got []string
	start := q.now

	q.After(20*time.Millisecond, func() { got = append(got, "late") })
	q.After(10*time.Millisecond, func() { got = append(got, "early") })
	q.After(10*time.Millisecond, func() { got = append(got, "early2") })
	q.Post(func() {
		got = append(got, "idle")
		q.Post(func() { got = append(got, "nested") })
	})
	assert.Equal(t, 4, q.Len())

	next, ok := q.Next()
	assert.True(t, ok)
	assert.Equal(t, start, next, "idle work is due now")

	q.Run(start)
	assert.Equal(t, []string{"idle"}, got)
	next, _ = q.Next()
	assert.Equal(t, start, next)

	q.Run(start.Add(15 * time.Millisecond))
	assert.Equal(t, []string{"idle", "nested", "early", "early2"}, got)
	next, ok = q.Next()
	assert.True(t, ok)
	assert.Equal(t, start.Add(20*time.Millisecond), next)

	q.Run(start.Add(time.Second))
	assert.Equal(t, []string{"idle", "nested", "early", "early2", "late"}, got)
	_, ok = q.Next()
	assert.False(t, ok)
	assert.Zero(t, q.Len())
}

func TestTaskQueueClockNeverGoesBack(t *testing.T) {
	var q TaskQueue
	base := time.Unix(1000, 0)
	q.Run(base)
	q.Run(base.Add(-time.Hour))
	ran := false
	q.After(time.Millisecond, func() { ran = true })
	q.Run(base)
	assert.False(t, ran)
	q.Run(base.Add(time.Millisecond))
	assert.True(t, ran)
}

func TestTaskQueueDrain(t *testing.T) {
	var q TaskQueue
	count := 0
	var again func()
	again = func() {
		count++
		q.Post(again)
	}
	q.Post(again)
	q.After(time.Millisecond, func() { count += 100 })
	q.Drain(3)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, q.Len())
}
