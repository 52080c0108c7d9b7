/*
Package runner drives an interactive simulation from a stream of commands.

It is the bridge between an *automata.Session and a terminal: commands are read
line by line from an io.Reader, applied to the session, and every result is
handed to a pluggable Renderer. When stdin is not a terminal the runner is
headless and prints no prompt, so sessions can be scripted:

	printf 'n\nn\nt\n' | automata run contains-one 01

# Commands

	n, next, <enter>   advance one step
	p, prev, back      go back one step
	a, all, run        run until the verdict
	t, trace           print the step history
	r, restart         start the same input again
	h, help, ?         list commands
	q, quit, exit      leave

# Usage

	r := runner.NewRunner(
		runner.WithInput(os.Stdin),
		runner.WithRenderer(tui.NewPrinter(os.Stdout)),
		runner.WithHeadless(!runner.IsInteractive(os.Stdin)),
	)
	if err := r.Run(ctx, sess, "0110", false); err != nil {
		log.Fatal(err)
	}
*/
package runner
