// cmd/bringup/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"bringup-go/boards/iwg37m"
	"bringup-go/devtree"
	"bringup-go/drivers/bd718xx"
	"bringup-go/drivers/rm67198"
	"bringup-go/services/boot"
	"bringup-go/services/config"
)

func main() {
	app := &cli.App{
		Name:  "bringup",
		Usage: "iWG37M board bring-up: PMIC unlock, board info, panel init",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "board", Value: iwg37m.Name, Usage: "embedded profile name"},
			&cli.StringFlag{Name: "profile", Usage: "YAML profile applied over the embedded one"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the bring-up sequence",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dtb", Usage: "flattened device tree blob"},
					&cli.BoolFlag{Name: "dry-run", Usage: "simulate the PMIC and straps instead of using host I2C/GPIO"},
					&cli.StringFlag{Name: "straps", Value: "0", Usage: "strap word used in dry-run"},
					&cli.StringFlag{Name: "dsi-trace", Value: "-", Usage: "file receiving the DSI packet trace (- for stdout)"},
				},
				Action: runCmd,
			},
			{
				Name:   "revision",
				Usage:  "decode a strap word into the SOM version",
				Action: revisionCmd,
			},
			{
				Name:   "cmds",
				Usage:  "print the panel manufacturer command set",
				Action: cmdsCmd,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "bringup:", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) (*zap.SugaredLogger, error) {
	var l *zap.Logger
	var err error
	if c.Bool("verbose") {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func runCmd(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	prof, err := config.Load(c.String("board"), c.String("profile"))
	if err != nil {
		return err
	}

	var pmicNode devtree.Node
	if path := c.String("dtb"); path != "" {
		blob, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree, err := devtree.Parse(blob)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg := prof.PMICConfig()
		for _, compat := range cfg.Variant.Compatibles() {
			if nodes := tree.FindCompatible(compat); len(nodes) > 0 {
				pmicNode = nodes[0]
				break
			}
		}
		if pmicNode == nil {
			log.Warnw("no PMIC node in device tree", "dtb", path)
		}
	}

	trace, closeTrace, err := openTrace(c.String("dsi-trace"))
	if err != nil {
		return err
	}
	defer closeTrace()

	var hw hardware
	if c.Bool("dry-run") {
		straps, err := strconv.ParseUint(c.String("straps"), 0, 8)
		if err != nil {
			return fmt.Errorf("straps: %w", err)
		}
		hw = newSimHardware(prof, uint8(straps), log)
	} else {
		hw, err = openHostHardware(prof, log)
		if err != nil {
			return err
		}
	}
	defer hw.Close()

	seq := boot.New(boot.Board{
		Muxer: logMuxer{log: log},
		Features: iwg37m.Features{
			NAND: prof.Features.NAND,
			SPI:  prof.Features.SPI,
			QSPI: prof.Features.QSPI,
		},
		Revision:   hw.RevisionPins(),
		Reset:      hw.ResetPin(),
		BSPVersion: prof.BSPVersion,
		Banner:     os.Stdout,
		PhysRAM:    prof.DRAM.PhysSize,
		TEESize:    prof.DRAM.TEESize,
	}, boot.WithLogger(log))

	pcfg := prof.PMICConfig()
	pcfg.Name = "pmic@" + strconv.FormatUint(uint64(pcfg.Address), 16)
	seq.AddPMIC(bd718xx.New(hw.I2C(), pcfg), pmicNode)
	if prof.Panel.Enabled {
		seq.AddPanel(rm67198.New(trace, rm67198.Config{Format: prof.PixelFormat()}))
	}

	rep := seq.Run(context.Background())
	for _, st := range rep.Stages {
		if st.Err != nil {
			log.Infow("stage", "stage", st.Stage, "err", st.Err, "fatal", st.Fatal)
		}
	}
	return rep.Err()
}

func revisionCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: bringup revision STRAPS", 2)
	}
	v, err := strconv.ParseUint(c.Args().First(), 0, 8)
	if err != nil {
		return err
	}
	r := iwg37m.Revision(v)
	fmt.Printf("strap 0x%02x: PCB R%d BOM %d (%s)\n", uint8(r), r.PCB(), r.BOM(), r.SOMVersion())
	return nil
}

func cmdsCmd(c *cli.Context) error {
	for i, cmd := range rm67198.ManufacturerCmds() {
		fmt.Printf("%3d  %02X %02X\n", i, cmd.Reg, cmd.Val)
	}
	return nil
}
