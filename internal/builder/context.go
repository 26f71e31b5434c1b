package builder

import (
	"fmt"

	"github.com/specialistvlad/prodgraph/internal/model"
	"github.com/specialistvlad/prodgraph/internal/predecessor"
)

// Context is the construction state shared by the build phases.
type Context struct {
	Resources map[int]*model.Resource
	Groups    map[int]*model.ResourceGroup

	// Order lists the tasks of Tasks in record order; batches follow their
	// position within the exploded task.
	Order []*model.Task
	Tasks map[string]*model.Task

	// Preds holds raw predecessor ids, including those of pre-split tasks.
	Preds    map[string][]string
	Flows    map[string]predecessor.Flow
	Exploded map[string][]string
}

func newContext() *Context {
	return &Context{
		Tasks:    make(map[string]*model.Task),
		Preds:    make(map[string][]string),
		Flows:    make(map[string]predecessor.Flow),
		Exploded: make(map[string][]string),
	}
}

// addTask registers t with its raw predecessors.
func (c *Context) addTask(t *model.Task, preds []string) error {
	key := t.Key()
	if _, exists := c.Tasks[key]; exists {
		return fmt.Errorf("%w: %w: %s", model.ErrConfig, model.ErrDuplicateTask, key)
	}
	if _, exists := c.Exploded[key]; exists {
		return fmt.Errorf("%w: %w: %s", model.ErrConfig, model.ErrDuplicateTask, key)
	}
	c.Order = append(c.Order, t)
	c.Tasks[key] = t
	c.Preds[key] = preds
	return nil
}

// addExploded registers the batches of the pre-split task parent.
func (c *Context) addExploded(parent string, preds []string, flow predecessor.Flow, batches []*model.Task) error {
	if _, exists := c.Tasks[parent]; exists {
		return fmt.Errorf("%w: %w: %s", model.ErrConfig, model.ErrDuplicateTask, parent)
	}
	if _, exists := c.Exploded[parent]; exists {
		return fmt.Errorf("%w: %w: %s", model.ErrConfig, model.ErrDuplicateTask, parent)
	}

	c.Preds[parent] = preds
	ids := make([]string, 0, len(batches))
	for _, b := range batches {
		if err := c.addTask(b, preds); err != nil {
			return err
		}
		c.Flows[b.Key()] = flow
		ids = append(ids, b.Key())
	}
	c.Exploded[parent] = ids
	return nil
}

func (c *Context) resolverInput() predecessor.Input {
	return predecessor.Input{
		Order:    c.Order,
		Tasks:    c.Tasks,
		Preds:    c.Preds,
		Flows:    c.Flows,
		Exploded: c.Exploded,
	}
}
