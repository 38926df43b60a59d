// Package harness drives a full sweep: every scenario, every outcome, in a
// fixed order.
//
// For each scenario the harness sweeps the grid once and then renders one
// table per outcome (by default: excellent, then beat the game). Scenarios
// are processed one after another and nothing carries over between them.
//
// # Failure Handling
//
// Any error aborts the run before the failing scenario is rendered, so a
// partial matrix never reaches the output. Tables of earlier scenarios have
// already been written. To keep sweeping past failed cells, configure the
// assembler with sweep.MarkFailures.
//
// # Deterministic Output
//
// With a simulator that is a pure function of its parameters, two runs
// produce byte-identical output regardless of the assembler's worker count:
// results are collected by cell index, never by completion order.
//
// # Usage
//
//	asm := sweep.NewAssembler(simulator.NewExecClient("./thegameanalyzer", 0, logger), 10000, logger)
//	h := harness.New(asm, harness.Options{Out: os.Stdout, Logger: logger})
//	summary, err := h.Run(ctx, sweep.DefaultScenarios())
package harness
