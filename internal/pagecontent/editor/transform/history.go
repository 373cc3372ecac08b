package transform

type historyState struct {
	undo []EditorState
	redo []EditorState
}

func (e *Editor) recordUndo(prev EditorState) {
	if e.limit <= 0 {
		return
	}

	e.hist.undo = append(e.hist.undo, prev)
	if len(e.hist.undo) > e.limit {
		e.hist.undo = e.hist.undo[len(e.hist.undo)-e.limit:]
	}
	e.hist.redo = nil
}

func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.hist.undo) > 0
}

func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.hist.redo) > 0
}

// Undo откатывает последнюю примененную транзакцию целиком.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.hist.undo) == 0 {
		return false
	}

	i := len(e.hist.undo) - 1
	prev := e.hist.undo[i]
	e.hist.undo = e.hist.undo[:i]
	e.hist.redo = append(e.hist.redo, e.state)
	e.state = prev
	return true
}

func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.hist.redo) == 0 {
		return false
	}

	i := len(e.hist.redo) - 1
	next := e.hist.redo[i]
	e.hist.redo = e.hist.redo[:i]
	e.hist.undo = append(e.hist.undo, e.state)
	e.state = next
	return true
}
