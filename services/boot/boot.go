// Package boot runs the board bring-up in a fixed order.
//
// Drivers are registered explicitly; there is no global registry. The
// sequencer decides what is fatal: iomux failures stop the boot, a PMIC
// that fails to probe only loses its regulators, and a panel that fails
// to come up only loses the display.
package boot

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"bringup-go/boards/iwg37m"
	"bringup-go/devtree"
	"bringup-go/drivers/bd718xx"
	"bringup-go/errcode"
)

// Panel is a display driver with a one-shot setup.
type Panel interface {
	Name() string
	Setup() error
}

// Board supplies the board-level side effects.
type Board struct {
	Muxer      iwg37m.Muxer
	Features   iwg37m.Features
	Revision   []iwg37m.PinInput
	Reset      iwg37m.PinOutput // nil skips the reset pulse
	BSPVersion string
	Banner     io.Writer // nil skips the banner
	PhysRAM    uint64
	TEESize    uint64
}

// StageResult records the outcome of one stage.
type StageResult struct {
	Stage string
	Err   error
	Fatal bool
}

// Report summarises a run.
type Report struct {
	Stages   []StageResult
	Revision iwg37m.Revision
	RAMSize  uint64
	// Regulators lists the children of every PMIC that reached Ready.
	Regulators []bd718xx.Child
	Halted     bool
}

// Err returns the first fatal error, if any.
func (r Report) Err() error {
	for _, s := range r.Stages {
		if s.Fatal {
			return s.Err
		}
	}
	return nil
}

type pmicEntry struct {
	dev  *bd718xx.Device
	node devtree.Node
}

// Sequencer holds the registered drivers.
type Sequencer struct {
	board  Board
	pmics  []pmicEntry
	panels []Panel
	log    *zap.SugaredLogger
	sleep  func(time.Duration)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.SugaredLogger) Option { return func(s *Sequencer) { s.log = l } }

// WithSleep replaces time.Sleep for board delays.
func WithSleep(f func(time.Duration)) Option { return func(s *Sequencer) { s.sleep = f } }

// New returns a Sequencer for board.
func New(board Board, opts ...Option) *Sequencer {
	s := &Sequencer{
		board: board,
		log:   zap.NewNop().Sugar(),
		sleep: time.Sleep,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddPMIC registers a PMIC with its configuration node (may be nil).
func (s *Sequencer) AddPMIC(d *bd718xx.Device, n devtree.Node) {
	s.pmics = append(s.pmics, pmicEntry{dev: d, node: n})
}

// AddPanel registers a panel. Panels are set up in registration order.
func (s *Sequencer) AddPanel(p Panel) { s.panels = append(s.panels, p) }

// Run executes every stage. It checks ctx between stages only; a stage
// in progress always completes.
func (s *Sequencer) Run(ctx context.Context) Report {
	var rep Report
	record := func(stage string, err error, fatal bool) {
		rep.Stages = append(rep.Stages, StageResult{Stage: stage, Err: err, Fatal: err != nil && fatal})
	}

	stages := []struct {
		name string
		run  func() bool // false halts
	}{
		{"early_init", func() bool {
			err := s.earlyInit()
			record("early_init", err, true)
			return err == nil
		}},
		{"dram", func() bool {
			rep.RAMSize = iwg37m.RAMSize(s.board.PhysRAM, s.board.TEESize)
			s.log.Infow("dram", "size", rep.RAMSize, "tee", s.board.TEESize)
			record("dram", nil, false)
			return true
		}},
		{"pmic", func() bool {
			rep.Regulators = s.bringUpPMICs(record)
			return true
		}},
		{"late_init", func() bool {
			rep.Revision = s.lateInit(record)
			return true
		}},
		{"panel", func() bool {
			s.setupPanels(record)
			return true
		}},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			record(st.name, errcode.Wrap(errcode.Canceled, "boot", st.name, err), true)
			rep.Halted = true
			return rep
		}
		if !st.run() {
			s.log.Errorw("boot halted", "stage", st.name, "err", rep.Err())
			rep.Halted = true
			return rep
		}
	}
	return rep
}

func (s *Sequencer) earlyInit() error {
	if s.board.Muxer == nil {
		return nil
	}
	if err := iwg37m.EarlyInit(s.board.Muxer, s.board.Features); err != nil {
		return err
	}
	if err := iwg37m.Init(s.board.Muxer, s.board.Features); err != nil {
		return err
	}
	if s.board.Features.SPI {
		s.log.Debugw("ecspi pads", "cs0", iwg37m.SPIChipSelect(0), "cs1", iwg37m.SPIChipSelect(1))
	}
	return nil
}

func (s *Sequencer) bringUpPMICs(record func(string, error, bool)) []bd718xx.Child {
	var ready []bd718xx.Child
	for _, e := range s.pmics {
		d := e.dev
		log := s.log.With("pmic", d.Name(), "addr", d.Address())

		stage := "pmic_bind:" + d.Name()
		err := d.Bind(e.node)
		switch errcode.Of(err) {
		case errcode.OK:
			log.Debugw("found regulators subnode", "children", len(d.Children()))
			if len(d.Children()) == 0 {
				log.Warnw("no regulator children found")
			}
		case errcode.MissingResource:
			log.Debugw("regulators subnode not found", "err", err)
		default:
			log.Errorw("bind failed", "err", err)
			record(stage, err, false)
			continue
		}
		record(stage, err, false)

		stage = "pmic_probe:" + d.Name()
		if err := d.Probe(); err != nil {
			log.Errorw("failed to unlock regulator control", "err", err)
			record(stage, err, false)
			continue
		}
		if err := d.Ready(); err != nil {
			record(stage, err, false)
			continue
		}
		rev, err := d.Revision()
		if err != nil {
			log.Warnw("pmic revision", "err", err)
		}
		log.Debugw("pmic ready", "variant", d.Variant().String(), "chip", d.Chip().String(), "rev", rev, "regs", d.RegCount())
		record(stage, nil, false)
		ready = append(ready, d.Children()...)
	}
	return ready
}

func (s *Sequencer) lateInit(record func(string, error, bool)) iwg37m.Revision {
	var err error
	if s.board.Muxer != nil {
		if err = iwg37m.ConfigPadsInit(s.board.Muxer); err != nil {
			s.log.Warnw("board config pads", "err", err)
		}
	}
	rev := iwg37m.ReadRevision(s.board.Revision)
	if s.board.Banner != nil {
		if err := iwg37m.WriteInfo(s.board.Banner, s.board.BSPVersion, rev); err != nil {
			s.log.Warnw("board banner", "err", err)
		}
	}
	s.log.Infow("board", "som", rev.SOMVersion(), "pcb", rev.PCB(), "bom", rev.BOM())
	if s.board.Reset != nil {
		iwg37m.PeripheralReset(s.board.Reset, s.sleep)
	}
	record("late_init", err, false)
	return rev
}

func (s *Sequencer) setupPanels(record func(string, error, bool)) {
	for _, p := range s.panels {
		stage := "panel:" + p.Name()
		err := p.Setup()
		if err != nil {
			s.log.Errorw("panel setup failed", "panel", p.Name(), "code", string(errcode.Of(err)), "err", err)
		} else {
			s.log.Infow("panel up", "panel", p.Name())
		}
		record(stage, err, false)
	}
}
