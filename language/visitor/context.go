package visitor

// Hooks are the punctuation callbacks of one nesting level. Prologue runs
// when the level is entered, Separator before every item but the first and
// Epilogue when the level is left. Nil hooks are skipped.
type Hooks struct {
	Prologue  func()
	Separator func()
	Epilogue  func()
}

type level struct {
	index int
	hooks Hooks
}

// Context tracks the nesting level and the item index within each level of
// a traversal. Hooks belong to the level they were entered with and are
// dropped when it is left, so a nested level never sees its parent's hooks.
// The zero value is ready to use.
type Context struct {
	levels []level
}

// Enter pushes a level and runs its prologue.
func (c *Context) Enter(h Hooks) {
	c.levels = append(c.levels, level{index: -1, hooks: h})
	if h.Prologue != nil {
		h.Prologue()
	}
}

// IncrementIndex advances to the next item of the current level, running
// the separator when the item is not the first.
func (c *Context) IncrementIndex() {
	l := c.top()
	l.index++
	if l.index > 0 && l.hooks.Separator != nil {
		l.hooks.Separator()
	}
}

// Leave runs the epilogue of the current level and pops it.
func (c *Context) Leave() {
	h := c.top().hooks
	c.levels = c.levels[:len(c.levels)-1]
	if h.Epilogue != nil {
		h.Epilogue()
	}
}

// Discard pops the current level without running its epilogue. It is used
// when a traversal stops early.
func (c *Context) Discard() {
	c.top()
	c.levels = c.levels[:len(c.levels)-1]
}

// Level is the number of entered levels.
func (c *Context) Level() int {
	return len(c.levels)
}

// Index is the position of the current item in the current level, -1 before
// the first IncrementIndex and when no level is entered.
func (c *Context) Index() int {
	if len(c.levels) == 0 {
		return -1
	}
	return c.levels[len(c.levels)-1].index
}

func (c *Context) top() *level {
	if len(c.levels) == 0 {
		panic("visitor: no level entered")
	}
	return &c.levels[len(c.levels)-1]
}

// Sequence visits items inside a new level with the given hooks. fn returns
// false to stop; the level is then discarded without its epilogue and
// Sequence returns false. The hooks run for empty lists too, which lets the
// caller decide what an empty list looks like.
func Sequence[T any](ctx *Context, items []T, hooks Hooks, fn func(i int, item T) bool) bool {
	ctx.Enter(hooks)
	for i, item := range items {
		ctx.IncrementIndex()
		if !fn(i, item) {
			ctx.Discard()
			return false
		}
	}
	ctx.Leave()
	return true
}
