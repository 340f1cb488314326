package snazy

import (
	"os/exec"
	"strings"
)

// Spawner starts an action command and returns without waiting for it to
// finish. Spawns are not ordered or limited.
type Spawner interface {
	Spawn(command string) error
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(command string) error

// Spawn calls f(command).
func (f SpawnerFunc) Spawn(command string) error { return f(command) }

// ShellSpawner runs commands with `sh -c`. The child is reaped on its own
// goroutine; its output is not captured.
var ShellSpawner Spawner = SpawnerFunc(spawnShell)

func spawnShell(command string) error {
	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// expandAction substitutes every {} in template with match.
func expandAction(template, match string) string {
	return strings.ReplaceAll(template, "{}", match)
}

func (p *Processor) runAction(line string) {
	if p.action == nil || p.cfg.ActionCommand == "" {
		return
	}
	loc := p.action.FindStringIndex(line)
	if loc == nil {
		return
	}
	command := expandAction(p.cfg.ActionCommand, line[loc[0]:loc[1]])
	if err := p.spawner.Spawn(command); err != nil {
		p.log.Error(err, "cannot start action command", "command", command)
	}
}
