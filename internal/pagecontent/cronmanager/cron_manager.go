// Пакет для управления фоновыми задачами сервиса по расписанию cron.
//
// Основные возможности:
//   - Реестр задач с расписанием в формате cron или @every.
//   - Восстановление после паники в задаче с записью в slog.
//   - Информация о следующем запуске задач для проверки состояния сервиса.
package cronmanager

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type CronJobFunc func()

type Job struct {
	Func     CronJobFunc
	Schedule string
}

type JobRegistry map[string]Job

type CronManager struct {
	dispatcher  *cron.Cron
	jobs        map[string]cron.EntryID
	mu          sync.Mutex
	jobRegistry JobRegistry
}

// JobInfo - состояние задачи в расписании
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	Next     time.Time `json:"next"`
	Prev     time.Time `json:"prev,omitempty"`
}

func NewCronManager(jobRegistry JobRegistry) *CronManager {
	logger := slogLogger{}
	dispatcher := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)

	return &CronManager{
		dispatcher:  dispatcher,
		jobs:        make(map[string]cron.EntryID),
		jobRegistry: jobRegistry,
	}
}

// LoadJobs добавляет в расписание все задачи реестра. Ранее добавленные задачи снимаются.
func (cm *CronManager) LoadJobs() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for name, entryID := range cm.jobs {
		cm.dispatcher.Remove(entryID)
		delete(cm.jobs, name)
	}

	var firstErr error
	for name, job := range cm.jobRegistry {
		id, err := cm.dispatcher.AddFunc(job.Schedule, job.Func)
		if err != nil {
			slog.Error("Failed to add job", "name", name, "schedule", job.Schedule, "err", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("add job %q: %w", name, err)
			}
			continue
		}
		cm.jobs[name] = id
	}
	return firstErr
}

func (cm *CronManager) RemoveJob(name string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if entryID, exists := cm.jobs[name]; exists {
		cm.dispatcher.Remove(entryID)
		delete(cm.jobs, name)
	}
}

// Jobs возвращает задачи расписания, отсортированные по имени.
func (cm *CronManager) Jobs() []JobInfo {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	res := make([]JobInfo, 0, len(cm.jobs))
	for name, id := range cm.jobs {
		entry := cm.dispatcher.Entry(id)
		res = append(res, JobInfo{
			Name:     name,
			Schedule: cm.jobRegistry[name].Schedule,
			Next:     entry.Next,
			Prev:     entry.Prev,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

func (cm *CronManager) Start() {
	cm.dispatcher.Start()
}

// Stop останавливает расписание и ждет завершения запущенных задач.
func (cm *CronManager) Stop() {
	ctx := cm.dispatcher.Stop()
	<-ctx.Done()
}

// slogLogger передает сообщения cron в slog.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
