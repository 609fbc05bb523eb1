package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lr35902/internal/cpu"
	"lr35902/internal/memory"
)

// Version information
const (
	Version     = "0.1.0"
	ProjectName = "LR35902 Core"
)

func main() {
	var (
		imagePath = flag.String("image", "", "Path to a raw 64KiB memory image")
		debugMode = flag.Bool("debug", false, "Print each instruction before executing it")
		stepMode  = flag.Bool("step", false, "Enable step-by-step execution")
		maxSteps  = flag.Int("max-steps", 100, "Maximum steps in step mode (0 for unlimited)")
	)
	flag.Parse()

	fmt.Printf("%s v%s\n", ProjectName, Version)
	fmt.Println("A Sharp LR35902 fetch-decode-execute core")
	fmt.Println()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showUsage()
			os.Exit(0)
		case "version":
			showVersion()
			os.Exit(0)
		default:
			*imagePath = args[0]
		}
	}

	if *imagePath == "" {
		fmt.Println("Error: memory image path required")
		showUsage()
		os.Exit(1)
	}

	if err := run(*imagePath, *debugMode, *stepMode, *maxSteps); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the image and drives the core in the requested mode.
func run(imagePath string, debugMode, stepMode bool, maxSteps int) error {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %v", err)
	}

	mem := memory.New()
	mem.LoadProgram(image)
	c := cpu.New(mem)

	fmt.Printf("Loaded %d bytes from %s\n", len(image), imagePath)
	fmt.Printf("Initial state: PC=0x%04X, SP=0x%04X, A=0x%02X\n",
		c.Registers.PC, c.Registers.SP, c.Registers.A)
	fmt.Println()

	if stepMode {
		return runStepMode(c, maxSteps)
	}
	return runDebugOrNormal(c, debugMode)
}

// runStepMode executes the core one instruction per Enter keypress.
func runStepMode(c *cpu.CPU, maxSteps int) error {
	fmt.Println("=== Step Mode ===")
	fmt.Println("Press Enter to execute each instruction, 'q' to quit, 'r' to run to completion")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	stepCount := 0

	for {
		if maxSteps > 0 && stepCount >= maxSteps {
			fmt.Printf("Reached maximum steps (%d). Stopping.\n", maxSteps)
			return nil
		}
		if c.IsHalted {
			fmt.Println("CPU is halted.")
			return nil
		}

		pc := c.Registers.PC
		opcode := c.Bus.ReadByte(pc)
		fmt.Printf("Step %d - PC: 0x%04X, Opcode: 0x%02X | A=0x%02X BC=0x%04X DE=0x%04X HL=0x%04X SP=0x%04X\n",
			stepCount+1, pc, opcode, c.Registers.A, c.Registers.BC(), c.Registers.DE(), c.Registers.HL(), c.Registers.SP)

		fmt.Print(">>> ")
		if !scanner.Scan() {
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "q", "quit":
			fmt.Println("Quitting step mode.")
			return nil
		case "r", "run":
			fmt.Println("Running to completion...")
			return runDebugOrNormal(c, false)
		case "", "s", "step":
			cycles, err := c.Step()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return err
			}
			fmt.Printf("  -> %d cycles\n", cycles)
			stepCount++
		default:
			fmt.Println("Commands: Enter/s=step, q=quit, r=run")
		}
		fmt.Println()
	}
}

// runDebugOrNormal executes the core until it halts, a decode error occurs,
// or the instruction ceiling is reached, optionally tracing each step.
func runDebugOrNormal(c *cpu.CPU, debugMode bool) error {
	const maxInstructions = 1_000_000
	var totalCycles uint64
	var instructions uint64

	for i := 0; i < maxInstructions; i++ {
		if c.IsHalted {
			fmt.Printf("Halted after %d instructions.\n", instructions)
			break
		}

		pc := c.Registers.PC
		if debugMode {
			opcode := c.Bus.ReadByte(pc)
			fmt.Printf("Step %d: PC=0x%04X, Op=0x%02X\n", instructions+1, pc, opcode)
		}

		cycles, err := c.Step()
		if err != nil {
			return fmt.Errorf("execution error at PC 0x%04X: %v", pc, err)
		}
		totalCycles += uint64(cycles)
		instructions++
	}

	fmt.Printf("\nFinal stats: %d instructions, %d cycles\n", instructions, totalCycles)
	fmt.Printf("Final state: PC=0x%04X, A=0x%02X, SP=0x%04X\n",
		c.Registers.PC, c.Registers.A, c.Registers.SP)
	return nil
}

// showUsage displays command usage information
func showUsage() {
	fmt.Printf("Usage: %s [OPTIONS] <image_file>\n", filepath.Base(os.Args[0]))
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -image string      Path to a raw 64KiB memory image")
	fmt.Println("  -debug             Print each instruction before executing it")
	fmt.Println("  -step              Enable step-by-step execution")
	fmt.Println("  -max-steps int     Maximum steps in step mode (default 100, 0=unlimited)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  help               Show this help message")
	fmt.Println("  version            Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  lr35902 boot.bin          # Run an image to completion")
	fmt.Println("  lr35902 -debug boot.bin   # Run with per-instruction trace")
	fmt.Println("  lr35902 -step boot.bin    # Run step-by-step")
}

// showVersion displays version information
func showVersion() {
	fmt.Printf("%s v%s\n", ProjectName, Version)
	fmt.Println("Written in Go")
	fmt.Println()
	fmt.Println("Features:")
	fmt.Println("- Complete Sharp LR35902 CPU emulation (full instruction coverage)")
	fmt.Println("- Tagged-dispatch decoder + executor + ALU primitive library")
}
