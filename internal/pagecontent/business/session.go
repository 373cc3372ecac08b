package business

import (
	"sync"
	"time"

	"github.com/aisa-it/shopadmin/internal/pagecontent/dao"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/schema"
	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/transform"
)

// session - открытый редактор страницы. Все операции со страницей выполняются под mu.
type session struct {
	mu sync.Mutex

	ed *transform.Editor
	// версия страницы, из которой построено состояние ed
	version  int
	lastUsed time.Time
	evicted  bool
}

func (s *session) release() {
	s.mu.Unlock()
}

func (s *session) reset() {
	s.ed = nil
	s.version = 0
}

// editorFor возвращает редактор для текущей версии страницы. Если сохраненная версия
// изменилась в обход сессии, редактор строится заново и история теряется.
func (s *session) editorFor(page *dao.PageContent, reg *schema.Registry, historyLimit int) (*transform.Editor, error) {
	if s.ed != nil && s.version == page.Version {
		return s.ed, nil
	}

	ed, err := transform.NewEditor(reg, page.Document.Root, transform.Cursor(0), transform.WithHistoryLimit(historyLimit))
	if err != nil {
		return nil, err
	}
	s.ed = ed
	s.version = page.Version
	return ed, nil
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// acquire возвращает заблокированную сессию страницы, создавая ее при необходимости.
func (st *sessionStore) acquire(slug string) *session {
	for {
		st.mu.Lock()
		sess, ok := st.sessions[slug]
		if !ok {
			sess = &session{}
			st.sessions[slug] = sess
		}
		st.mu.Unlock()

		sess.mu.Lock()
		if sess.evicted {
			// сессию закрыли между поиском и блокировкой
			sess.mu.Unlock()
			continue
		}
		sess.lastUsed = time.Now()
		return sess
	}
}

// evictIdle удаляет свободные сессии, последний раз использованные до before.
func (st *sessionStore) evictIdle(before time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for slug, sess := range st.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastUsed.Before(before) {
			sess.evicted = true
			sess.reset()
			delete(st.sessions, slug)
			evicted++
		}
		sess.mu.Unlock()
	}
	return evicted
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
