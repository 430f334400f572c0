package inspector

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/plus3/dodeca/ecs"
	"go.uber.org/zap"
)

// DefaultCopySuffix is appended to the name of a duplicated entity.
const DefaultCopySuffix = " (copy)"

// Options configures a Controller.
type Options struct {
	CopySuffix string
	Logger     *zap.Logger
}

// PassResult summarizes one inspection pass.
type PassResult struct {
	Entities   int // entities drawn after filtering
	Removed    int // components queued for removal
	Duplicated int
	Despawned  int
	Failed     int // entities whose rendering panicked
}

type inspectable struct {
	Entity ecs.EntityId
	*Marker
}

// Controller draws every entity carrying a Marker and turns the user's
// actions into structural commands. Commands are queued while drawing and
// applied together at the end of Pass.
type Controller struct {
	storage  *ecs.Storage
	registry *Registry
	commands *ecs.Commands
	entities *ecs.Query[inspectable]
	suffix   string
	log      *zap.Logger

	filter string
}

// NewController creates a controller over storage. Marker must be registered
// with the storage's component registry.
func NewController(storage *ecs.Storage, registry *Registry, opts Options) *Controller {
	if opts.CopySuffix == "" {
		opts.CopySuffix = DefaultCopySuffix
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		storage:  storage,
		registry: registry,
		commands: ecs.NewCommands(),
		entities: ecs.NewQuery[inspectable](storage),
		suffix:   opts.CopySuffix,
		log:      opts.Logger,
	}
}

// Filter returns the current name filter.
func (c *Controller) Filter() string {
	return c.filter
}

// SetFilter shows only entities whose name contains s, ignoring case.
func (c *Controller) SetFilter(s string) {
	c.filter = s
}

// entityActions are the structural requests collected while drawing one entity.
type entityActions struct {
	handles   []Handle
	remove    []bool
	duplicate bool
	despawn   bool
}

// Pass draws all inspectable entities into ui and applies the resulting
// structural changes.
func (c *Controller) Pass(ui Surface) PassResult {
	c.registry.Seal()

	var result PassResult
	ui.InputText("Filter", &c.filter)

	c.entities.Execute()
	rows := make([]inspectable, 0, c.entities.Len())
	for row := range c.entities.Values() {
		if row.ID == uuid.Nil {
			row.ID = uuid.Must(uuid.NewV7())
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b inspectable) int {
		switch {
		case a.Marker.before(b.Marker):
			return -1
		case b.Marker.before(a.Marker):
			return 1
		}
		return 0
	})

	needle := strings.ToLower(c.filter)
	for _, row := range rows {
		if needle != "" && !strings.Contains(strings.ToLower(row.Name), needle) {
			if row.edit.Active() {
				c.release(row)
			}
			continue
		}
		result.Entities++

		actions, err := c.inspect(ui, row)
		if err != nil {
			result.Failed++
			c.log.Error("inspector: entity skipped",
				zap.Stringer("entity", row.Entity),
				zap.String("name", row.Name),
				zap.Error(err))
			continue
		}
		c.queue(row, actions, &result)
	}

	c.commands.Flush(c.storage)
	return result
}

// inspect draws one entity. A panic in any renderer discards every action
// collected for the entity.
func (c *Controller) inspect(ui Surface, row inspectable) (actions entityActions, err error) {
	guard := &sectionGuard{Surface: ui}
	defer func() {
		if r := recover(); r != nil {
			guard.unwind()
			actions = entityActions{}
			err = fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
	}()

	guard.PushID(row.ID.String())
	guard.Separator()
	guard.InputText("Name", &row.Name)
	actions.duplicate = guard.Button("Duplicate")
	guard.SameLine()
	actions.despawn = guard.Button("Delete entity")

	actions.handles = c.registry.CapabilitiesOf(c.storage, row.Entity)
	actions.remove = make([]bool, len(actions.handles))
	edit := row.Edit()
	edit.beginPass()
	var collapsed []Handle
	for i, h := range actions.handles {
		if !guard.BeginSection(h.Name()) {
			collapsed = append(collapsed, h)
			continue
		}
		h.Render(edit, guard)
		actions.remove[i] = guard.Button("Remove")
		guard.EndSection()
	}
	guard.PopID()

	if edit.Active() && !edit.drawn {
		settle(edit, collapsed)
	}
	return actions, nil
}

// release ends the edit session of an entity that is not drawn this pass.
func (c *Controller) release(row inspectable) {
	defer func() {
		if r := recover(); r != nil {
			row.edit.Clear()
			c.log.Error("inspector: edit session dropped",
				zap.Stringer("entity", row.Entity),
				zap.String("name", row.Name),
				zap.Any("panic", r))
		}
	}()
	row.edit.beginPass()
	settle(row.edit, c.registry.CapabilitiesOf(c.storage, row.Entity))
}

// settle ends an edit session whose widgets were not drawn. The handles are
// rendered onto a hidden surface, so a pending rotation is committed to the
// current component value before the cache is cleared.
func settle(edit *EditState, handles []Handle) {
	for _, h := range handles {
		h.Render(edit, hiddenSurface{})
		if !edit.Active() {
			return
		}
	}
	edit.Clear()
}

// queue turns one entity's actions into commands. The duplicate copies every
// capability as drawn this pass, including ones being removed.
func (c *Controller) queue(row inspectable, actions entityActions, result *PassResult) {
	if actions.duplicate {
		clone := c.commands.SpawnEmpty().Insert(row.Duplicate(c.suffix))
		for _, h := range actions.handles {
			h.CloneOnto(clone)
		}
		result.Duplicated++
	}

	target := c.commands.Entity(row.Entity)
	if actions.despawn {
		target.Despawn()
		result.Despawned++
		return
	}
	for i, h := range actions.handles {
		if actions.remove[i] {
			h.Remove(target)
			result.Removed++
		}
	}
}
