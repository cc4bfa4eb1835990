package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"desk-cli/internal/actions"
	"desk-cli/internal/model"
	"desk-cli/internal/mutate"
	"desk-cli/internal/scene"

	"github.com/spf13/cobra"
)

func newScriptCmd(app *App) *cobra.Command {
	var events bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "script [file|-]",
		Short: "Run a desk script against a fresh scene (see `desk docs scripting`)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				in = f
			}

			sc, closeFn, err := newScene(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			r := newScriptRunner(sc, func(v any) error { return writeOut(cmd, app, v) })
			if err := r.Run(in); err != nil {
				return writeErr(cmd, err)
			}
			if !quiet {
				if err := writeOut(cmd, app, sc.Snapshot()); err != nil {
					return writeErr(cmd, err)
				}
			}
			if events {
				evs, err := sc.Events(0)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, evs)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&events, "events", false, "Also print the activity journal after the final scene")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print the final scene")

	return cmd
}

// scriptRunner executes desk script lines one at a time against a scene. Print commands
// (show, open, tray, bin, events) write through emit as they run.
type scriptRunner struct {
	sc      *scene.Scene
	emit    func(any) error
	aliases map[string]string
}

func newScriptRunner(sc *scene.Scene, emit func(any) error) *scriptRunner {
	return &scriptRunner{sc: sc, emit: emit, aliases: map[string]string{}}
}

func (r *scriptRunner) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		words, err := splitScriptLine(text)
		if err != nil {
			return ScriptError{Line: line, Text: text, Err: err}
		}
		if len(words) == 0 {
			continue
		}
		if err := r.exec(words); err != nil {
			return ScriptError{Line: line, Text: text, Err: err}
		}
	}
	return sc.Err()
}

func (r *scriptRunner) exec(w []string) error {
	cmd, args := strings.ToLower(w[0]), w[1:]
	switch cmd {
	case "add":
		return r.add(args)
	case "tear":
		args, alias := splitAlias(args)
		p := r.sc.TearPage(strings.Join(args, " "))
		return r.bind(alias, p.ID)
	case "text":
		id, rest, err := r.refAnd(args, 1, "text REF TEXT")
		if err != nil {
			return err
		}
		return r.sc.EditText(id, strings.Join(rest, " "))
	case "priority":
		id, rest, err := r.refAnd(args, 1, "priority REF urgent|normal|low")
		if err != nil {
			return err
		}
		p, err := model.ParsePriority(rest[0])
		if err != nil {
			return err
		}
		return r.sc.SetPriority(id, p)
	case "notes":
		return r.sc.SetNotes(strings.Join(args, " "))
	case "rename":
		id, rest, err := r.refAnd(args, 1, "rename REF NAME")
		if err != nil {
			return err
		}
		return r.sc.RenameFolder(id, strings.Join(rest, " "))
	case "drag":
		id, pt, err := r.refPoint(args, "drag REF X Y")
		if err != nil {
			return err
		}
		return r.sc.Drag(scene.DragEvent{ItemID: id, X: pt.X, Y: pt.Y})
	case "drop":
		return r.drop(args)
	case "drop-at":
		id, pt, err := r.refPoint(args, "drop-at REF X Y")
		if err != nil {
			return err
		}
		_, err = r.sc.DropAt(id, "", pt)
		return err
	case "delete":
		id, _, err := r.refAnd(args, 0, "delete REF")
		if err != nil {
			return err
		}
		return r.sc.Delete("", id)
	case "restore":
		id, _, err := r.refAnd(args, 0, "restore REF")
		if err != nil {
			return err
		}
		_, err = r.sc.Restore(id)
		return err
	case "purge":
		args, confirm := splitConfirm(args)
		id, _, err := r.refAnd(args, 0, "purge REF --yes")
		if err != nil {
			return err
		}
		_, err = r.sc.PermanentlyDelete(id, confirm)
		return err
	case "empty-bin":
		_, confirm := splitConfirm(args)
		_, err := r.sc.EmptyBin(confirm)
		return err
	case "bounds":
		if len(args) != 4 {
			return usage("bounds MINX MAXX MINY MAXY")
		}
		v, err := parseFloats(args)
		if err != nil {
			return err
		}
		r.sc.SetBounds(model.Bounds{MinX: v[0], MaxX: v[1], MinY: v[2], MaxY: v[3]})
		return nil
	case "open":
		id, _, err := r.refAnd(args, 0, "open REF")
		if err != nil {
			return err
		}
		f, err := r.sc.OpenFolder(id)
		if err != nil {
			return err
		}
		return r.emit(f)
	case "tray":
		return r.emit(r.sc.TrayContents())
	case "bin":
		return r.emit(r.sc.RecycleBin())
	case "show":
		return r.emit(r.sc.Snapshot())
	case "events":
		limit := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("events: bad limit %q", args[0])
			}
			limit = n
		}
		evs, err := r.sc.Events(limit)
		if err != nil {
			return err
		}
		return r.emit(evs)
	default:
		return fmt.Errorf("unknown command %q", w[0])
	}
}

// add goes through the creation bridge like any other trigger outside the scene. The
// new item is the topmost one afterwards.
func (r *scriptRunner) add(args []string) error {
	args, alias := splitAlias(args)
	if len(args) == 0 {
		return usage("add sticky|file NAME [TYPE]|folder NAME [as ALIAS]")
	}
	a, err := actions.ParseAction(args[0])
	if err != nil {
		return err
	}
	b := r.sc.Bridge()
	var ok bool
	switch a {
	case actions.AddSticky:
		ok = b.AddSticky()
	case actions.AddFile:
		if len(args) < 2 || len(args) > 3 {
			return usage("add file NAME [TYPE]")
		}
		typ := ""
		if len(args) == 3 {
			typ = args[2]
		}
		ok = b.AddFile(args[1], typ)
	case actions.AddFolder:
		if len(args) < 2 {
			return usage("add folder NAME")
		}
		ok = b.AddFolder(strings.Join(args[1:], " "))
	}
	if !ok {
		return errors.New("add: creation actions are not registered")
	}
	stack := r.sc.Stack()
	return r.bind(alias, stack[len(stack)-1].ItemID())
}

func (r *scriptRunner) drop(args []string) error {
	if len(args) < 2 {
		return usage("drop REF desk|tray|bin|folder REF")
	}
	id, err := r.ref(args[0])
	if err != nil {
		return err
	}
	target, err := model.ParseContainer(args[1])
	if err != nil {
		return err
	}
	ev := scene.DropEvent{ItemID: id, Target: target}
	if target == model.ContainerFolder {
		if len(args) != 3 {
			return usage("drop REF folder REF")
		}
		if ev.FolderID, err = r.ref(args[2]); err != nil {
			return err
		}
	}
	_, err = r.sc.Drop(ev)
	return err
}

func (r *scriptRunner) bind(alias, id string) error {
	if alias == "" {
		return nil
	}
	if _, exists := r.aliases[alias]; exists {
		return fmt.Errorf("alias @%s already bound", alias)
	}
	r.aliases[alias] = id
	return nil
}

func (r *scriptRunner) ref(s string) (string, error) {
	if name, ok := strings.CutPrefix(s, "@"); ok {
		id, ok := r.aliases[name]
		if !ok {
			return "", unknownAliasError{alias: name}
		}
		return id, nil
	}
	return s, nil
}

// refAnd resolves args[0] and requires at least n more words.
func (r *scriptRunner) refAnd(args []string, n int, form string) (string, []string, error) {
	if len(args) < 1+n {
		return "", nil, usage(form)
	}
	id, err := r.ref(args[0])
	if err != nil {
		return "", nil, err
	}
	return id, args[1:], nil
}

func (r *scriptRunner) refPoint(args []string, form string) (string, model.Point, error) {
	if len(args) != 3 {
		return "", model.Point{}, usage(form)
	}
	id, err := r.ref(args[0])
	if err != nil {
		return "", model.Point{}, err
	}
	v, err := parseFloats(args[1:])
	if err != nil {
		return "", model.Point{}, err
	}
	return id, model.Point{X: v[0], Y: v[1]}, nil
}

func splitAlias(args []string) ([]string, string) {
	if n := len(args); n >= 2 && strings.EqualFold(args[n-2], "as") {
		return args[:n-2], strings.TrimPrefix(args[n-1], "@")
	}
	return args, ""
}

func splitConfirm(args []string) ([]string, mutate.Confirmation) {
	out := make([]string, 0, len(args))
	confirm := mutate.Unconfirmed
	for _, a := range args {
		if a == "--yes" || a == "-y" {
			confirm = mutate.Confirmed
			continue
		}
		out = append(out, a)
	}
	return out, confirm
}

func parseFloats(ss []string) ([]float64, error) {
	out := make([]float64, len(ss))
	for i, s := range ss {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", s)
		}
		out[i] = v
	}
	return out, nil
}

func usage(form string) error {
	return fmt.Errorf("usage: %s", form)
}
