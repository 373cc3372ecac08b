package cronmanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobs(t *testing.T) {
	cm := NewCronManager(JobRegistry{
		"evict_sessions": {Func: func() {}, Schedule: "@every 1m"},
		"broken":         {Func: func() {}, Schedule: "not a schedule"},
	})

	err := cm.LoadJobs()
	assert.Error(t, err)

	jobs := cm.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "evict_sessions", jobs[0].Name)
	assert.Equal(t, "@every 1m", jobs[0].Schedule)

	// повторная загрузка не дублирует задачи
	_ = cm.LoadJobs()
	assert.Len(t, cm.Jobs(), 1)

	cm.RemoveJob("evict_sessions")
	assert.Empty(t, cm.Jobs())
}

func TestJobRunsAndRecovers(t *testing.T) {
	done := make(chan struct{}, 1)
	cm := NewCronManager(JobRegistry{
		"tick": {Func: func() {
			select {
			case done <- struct{}{}:
			default:
			}
		}, Schedule: "@every 1s"},
		"panics": {Func: func() { panic("boom") }, Schedule: "@every 1s"},
	})
	require.NoError(t, cm.LoadJobs())
	cm.Start()
	defer cm.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job was not executed")
	}
}
