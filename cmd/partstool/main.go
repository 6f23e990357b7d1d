// partstool is a CLI utility for inspecting the assembled vehicle without a
// renderer.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/app"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/assembly"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/bridge"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/config"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/network/packets"
	"github.com/tangbao666ai-ai/rocket-parts-viz/internal/parts"
	"github.com/tangbao666ai-ai/rocket-parts-viz/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "list", "ls":
		cmdList(args)
	case "info":
		cmdInfo(args)
	case "parts":
		cmdParts(args)
	case "pick":
		cmdPick(args)
	case "flow":
		cmdFlow(args)
	case "frame":
		cmdFrame(args)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`partstool - rocket assembly inspection utility

Usage:
  partstool <command> [options]

Commands:
  list                         List the part catalog
  info <id>                    Show metadata for a part id
  parts [-group id]            List assembled parts with rest height and explode offset
  pick [-explode f] <x> <y>    Pick at normalized device coordinates
  flow [-stage s] [-t sec]     Print flow points for a stage
  frame [options]              Run one headless frame and print it as JSON
  watch [-n frames] <url>      Connect to a running viewer and print messages

Examples:
  partstool info s_ic_shell
  partstool parts -group stage1_engines
  partstool pick 0 0
  partstool flow -stage S-II -n 8
  partstool frame -explode 1 -cutaway 0.5
  partstool watch ws://localhost:8080/ws`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func headless() *app.App {
	a, err := app.New(config.Default(), nil)
	if err != nil {
		fail("Error: %v", err)
	}
	a.State.AutoRotate = false
	return a
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)

	reg := parts.Default()
	for _, m := range reg.All() {
		fmt.Printf("%-22s %s\n", m.ID, m.Name)
	}
	fmt.Printf("\n%d parts\n", reg.Len())
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fail("Usage: partstool info <id>")
	}

	reg := parts.Default()
	meta := reg.Describe(args[0])
	_, known := reg.Lookup(args[0])

	fmt.Printf("ID:    %s\n", meta.ID)
	fmt.Printf("Name:  %s\n", meta.Name)
	if !known {
		fmt.Println("(not in catalog)")
	}
	for _, line := range meta.Description {
		fmt.Printf("  - %s\n", line)
	}
	if group, ok := assembly.ExplodeGroup(meta.ID); ok {
		off, _ := assembly.ExplodeOffset(meta.ID)
		fmt.Printf("Explode: %s (%+.1f)\n", group, off)
	}
}

func cmdParts(args []string) {
	fs := flag.NewFlagSet("parts", flag.ExitOnError)
	group := fs.String("group", "", "Only show one pick group")
	fs.Parse(args)

	a := assembly.Build()
	count := 0
	for i, p := range a.Parts {
		if *group != "" && p.ID != *group {
			continue
		}
		off, eligible := assembly.ExplodeOffset(p.ID)
		explode := "-"
		if eligible {
			explode = strconv.FormatFloat(float64(off), 'f', 1, 32)
		}
		shell := ""
		if p.Shell {
			shell = "shell"
		}
		y := p.WorldMatrix().TransformPoint(math.Vec3{}).Y
		fmt.Printf("%4d  %-22s %-9s y=%7.2f explode=%-5s %s\n", i, p.ID, p.Kind, y, explode, shell)
		count++
	}

	fmt.Printf("\n%d parts, %d groups, height %.1f\n", count, len(a.GroupIDs()), a.Layout.Height)
}

func cmdPick(args []string) {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	explode := fs.Float64("explode", 0, "Explode amount before picking")
	yaw := fs.Float64("yaw", 0, "Vehicle yaw in radians")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fail("Usage: partstool pick [-explode f] [-yaw r] <x> <y>")
	}
	x, errX := strconv.ParseFloat(fs.Arg(0), 32)
	y, errY := strconv.ParseFloat(fs.Arg(1), 32)
	if errX != nil || errY != nil {
		fail("Error: coordinates must be numbers in [-1, 1]")
	}

	a := headless()
	a.Handle(bridge.ControlEvent{Field: packets.FieldExplode, Number: float32(*explode)})
	a.Assembly.SetYaw(float32(*yaw))
	a.Step(0, 0)

	a.Handle(bridge.PointerEvent{NDC: math.Vec2{X: float32(x), Y: float32(y)}})
	sel := a.Resolver.Selection()
	if sel.Empty() {
		fmt.Println("No part hit")
		return
	}
	meta := a.Registry.Describe(sel.ID)
	fmt.Printf("Hit: %s (%s)\n", sel.ID, meta.Name)
	fmt.Printf("Group size: %d\n", len(a.Assembly.Group(sel.ID)))
}

func cmdFlow(args []string) {
	fs := flag.NewFlagSet("flow", flag.ExitOnError)
	stageName := fs.String("stage", string(assembly.StageIC), "Stage (S-IC, S-II, S-IVB)")
	at := fs.Float64("t", 0, "Seconds since start")
	limit := fs.Int("n", 0, "Limit points per path (0 = all)")
	fs.Parse(args)

	stage, err := assembly.ParseStage(*stageName)
	if err != nil {
		fail("Error: %v", err)
	}

	a := headless()
	a.Handle(bridge.ControlEvent{Field: packets.FieldFlow, Bool: true})
	a.Handle(bridge.ControlEvent{Field: packets.FieldActiveStage, Stage: stage})
	a.Step(time.Duration(*at*float64(time.Second)), 0)

	for _, p := range a.Flows.Stage(stage) {
		fmt.Printf("%s  %s  speed=%.2f  length=%.2f\n", p.ID, p.Color, p.Speed, p.Curve.Length())
		for i, pt := range p.Points {
			if *limit > 0 && i >= *limit {
				fmt.Printf("  ... %d more\n", len(p.Points)-i)
				break
			}
			fmt.Printf("  %3d  (%7.2f, %7.2f, %7.2f)\n", i, pt.X, pt.Y, pt.Z)
		}
	}
}

func cmdFrame(args []string) {
	fs := flag.NewFlagSet("frame", flag.ExitOnError)
	explode := fs.Float64("explode", 0, "Explode amount")
	cutaway := fs.Float64("cutaway", 0, "Cutaway amount")
	flow := fs.Bool("flow", false, "Enable flow")
	stage := fs.String("stage", string(assembly.StageIC), "Active flow stage")
	at := fs.Float64("t", 1, "Seconds since start")
	fs.Parse(args)

	a := headless()
	env := func(field string, value any) {
		raw, _ := json.Marshal(value)
		ev, err := bridge.DecodeEvent(packets.Envelope{
			Type:    packets.TypeControl,
			Payload: mustJSON(packets.Control{Field: field, Value: raw}),
		})
		if err != nil {
			fail("Error: %v", err)
		}
		a.Handle(ev)
	}
	env(packets.FieldExplode, *explode)
	env(packets.FieldCutaway, *cutaway)
	env(packets.FieldFlow, *flow)
	env(packets.FieldActiveStage, *stage)

	frame := a.Step(time.Duration(*at*float64(time.Second)), 0)
	out, err := json.MarshalIndent(frame, "", "  ")
	if err != nil {
		fail("Error: %v", err)
	}
	fmt.Println(string(out))
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		fail("Error: %v", err)
	}
	return data
}

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	frames := fs.Int("n", 10, "Stop after N frames (0 = forever)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("Usage: partstool watch [-n frames] <ws://host:port/ws>")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := network.New()
	if err := c.Connect(ctx, fs.Arg(0)); err != nil {
		fail("Error: %v", err)
	}
	defer c.Disconnect()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.RegisterHandler(packets.TypeScene, func(payload json.RawMessage) error {
		var s packets.Scene
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		fmt.Printf("scene: %d parts, %d flow paths\n", len(s.Parts), len(s.Flows))
		return nil
	})
	c.RegisterHandler(packets.TypeCamera, func(payload json.RawMessage) error {
		var cam packets.Camera
		if err := json.Unmarshal(payload, &cam); err != nil {
			return err
		}
		fmt.Printf("camera: distance=%.1f yaw=%.2f pitch=%.2f\n", cam.Distance, cam.Yaw, cam.Pitch)
		return nil
	})
	c.RegisterHandler(packets.TypeInfo, func(payload json.RawMessage) error {
		var info packets.Info
		if err := json.Unmarshal(payload, &info); err != nil {
			return err
		}
		if info.PartID == "" {
			fmt.Println("info: cleared")
		} else {
			fmt.Printf("info: %s (%s)\n", info.PartID, info.Name)
		}
		return nil
	})
	seen := 0
	c.RegisterHandler(packets.TypeFrame, func(payload json.RawMessage) error {
		var f packets.Frame
		if err := json.Unmarshal(payload, &f); err != nil {
			return err
		}
		fmt.Printf("frame %d: t=%.2f yaw=%.3f flows=%d highlight=%q\n",
			f.Seq, f.Time, f.Yaw, len(f.Flows), f.Highlight)
		seen++
		if *frames > 0 && seen >= *frames {
			cancel()
		}
		return nil
	})

	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		fail("Error: %v", err)
	}
}
