package gitsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// State classifies the data directory with respect to version control.
type State int

const (
	// StateAbsent: the data directory does not exist yet.
	StateAbsent State = iota
	// StateNotARepo: the directory exists with no repository anywhere
	// above or below it.
	StateNotARepo
	// StateParentTracked: the directory sits inside an enclosing
	// repository but is not its own repository root.
	StateParentTracked
	// StateIndependent: the directory is its own repository root.
	StateIndependent
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateNotARepo:
		return "not a repository"
	case StateParentTracked:
		return "tracked by an enclosing repository"
	case StateIndependent:
		return "independent repository"
	default:
		return "unknown"
	}
}

// Result is the outcome of one user-facing sync operation: a success flag
// plus the full human-readable transcript. Failures are reported here, not
// returned as errors, because sync actions are advisory and retryable.
type Result struct {
	OK     bool
	Output string
}

// Reconciler performs clone/pull/push/status against the data directory.
// State transitions are driven entirely by what git reports on each call,
// not by in-process bookkeeping; the persisted Config is only a cache.
type Reconciler struct {
	dataDir    string
	configPath string
	runner     Runner
	log        *zap.Logger
}

// NewReconciler creates a reconciler for dataDir, caching sync settings at
// configPath. Tests substitute a scripted Runner.
func NewReconciler(dataDir, configPath string, runner Runner, log *zap.Logger) *Reconciler {
	return &Reconciler{
		dataDir:    dataDir,
		configPath: configPath,
		runner:     runner,
		log:        log,
	}
}

// Config returns the cached sync configuration.
func (r *Reconciler) Config() Config {
	return LoadConfig(r.configPath)
}

// DetectState classifies the data directory. A directory only counts as an
// independent repository when it has its own .git marker and git resolves
// the repository toplevel back to the directory itself; a marker-less
// directory inside a larger checkout is parent-tracked, which a bare
// existence check cannot distinguish.
func (r *Reconciler) DetectState(ctx context.Context) State {
	if _, err := os.Stat(r.dataDir); err != nil {
		return StateAbsent
	}

	if _, err := os.Stat(filepath.Join(r.dataDir, ".git")); err != nil {
		// No marker of its own; it may still live inside a parent repo.
		res := r.runner.Run(ctx, r.dataDir, "rev-parse", "--is-inside-work-tree")
		if res.Ok() && strings.TrimSpace(res.Stdout) == "true" {
			return StateParentTracked
		}
		return StateNotARepo
	}

	res := r.runner.Run(ctx, r.dataDir, "rev-parse", "--show-toplevel")
	if !res.Ok() {
		return StateNotARepo
	}
	if samePath(strings.TrimSpace(res.Stdout), r.dataDir) {
		return StateIndependent
	}
	return StateParentTracked
}

// remoteURL returns the configured origin URL of the data repository.
func (r *Reconciler) remoteURL(ctx context.Context) string {
	res := r.runner.Run(ctx, r.dataDir, "remote", "get-url", "origin")
	if !res.Ok() {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// currentBranch returns the checked-out branch of the data repository.
func (r *Reconciler) currentBranch(ctx context.Context) string {
	res := r.runner.Run(ctx, r.dataDir, "rev-parse", "--abbrev-ref", "HEAD")
	if !res.Ok() {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// Clone makes the data directory an independent clone of remoteURL. An
// existing clone of the same remote is a no-op; a clone of a different
// remote is refused; any other existing directory is backed up first. The
// clone is retried without --branch so a remote that does not have the
// branch yet (first push not done) still clones.
func (r *Reconciler) Clone(ctx context.Context, remoteURL, branch string) Result {
	var out strings.Builder

	switch state := r.DetectState(ctx); state {
	case StateIndependent:
		existing := r.remoteURL(ctx)
		if existing == remoteURL {
			r.persistConfig(remoteURL, branch)
			return Result{OK: true, Output: fmt.Sprintf(
				"✓ data directory is already a clone of %s\nnothing to do", remoteURL)}
		}
		return Result{OK: false, Output: fmt.Sprintf(
			"✗ data directory is already an independent repository with a different remote\n"+
				"  configured: %s\n  requested:  %s\n"+
				"delete the directory or back it up before cloning a new remote",
			existing, remoteURL)}

	case StateNotARepo, StateParentTracked:
		backup, err := r.backup()
		if err != nil {
			return Result{OK: false, Output: fmt.Sprintf("✗ backing up existing data directory failed: %v", err)}
		}
		fmt.Fprintf(&out, "existing data directory (%s) moved to %s\n\n", state, backup)

	case StateAbsent:
		// Nothing in the way.
	}

	if err := os.MkdirAll(filepath.Dir(r.dataDir), 0o755); err != nil {
		return Result{OK: false, Output: fmt.Sprintf("✗ creating parent directory failed: %v", err)}
	}

	parent := filepath.Dir(r.dataDir)
	args := []string{"clone", "--branch", branch, remoteURL, r.dataDir}
	res := r.runner.Run(ctx, parent, args...)
	writeSection(&out, "git clone --branch "+branch, res)

	if !res.Ok() {
		// The remote may not have the branch yet; retry plain.
		res = r.runner.Run(ctx, parent, "clone", remoteURL, r.dataDir)
		writeSection(&out, "git clone", res)
	}

	if !res.Ok() {
		out.WriteString("\n✗ clone failed")
		return Result{OK: false, Output: out.String()}
	}

	r.persistConfig(remoteURL, branch)
	out.WriteString("\n✓ cloned data repository")
	return Result{OK: true, Output: out.String()}
}

// backup renames the data directory to the first unused sibling backup
// path: <name>.backup, <name>.backup.1, <name>.backup.2, ...
func (r *Reconciler) backup() (string, error) {
	candidate := r.dataDir + ".backup"
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			break
		}
		candidate = fmt.Sprintf("%s.backup.%d", r.dataDir, i)
	}
	if err := os.Rename(r.dataDir, candidate); err != nil {
		return "", err
	}
	r.log.Info("backed up data directory", zap.String("to", candidate))
	return candidate, nil
}

// Pull fetches and merges the configured branch. It refuses, without
// running a pull, unless the data directory is an independent repository
// pointing at the expected remote.
func (r *Reconciler) Pull(ctx context.Context, remoteURL, branch string) Result {
	if res, ok := r.requireIndependent(ctx); !ok {
		return res
	}
	if res, ok := r.requireRemote(ctx, remoteURL); !ok {
		return res
	}

	var out strings.Builder
	res := r.runner.Run(ctx, r.dataDir, "pull", "origin", branch)
	writeSection(&out, "git pull origin "+branch, res)

	if !res.Ok() {
		out.WriteString("\n✗ pull failed")
		return Result{OK: false, Output: out.String()}
	}

	r.touchConfig()
	out.WriteString("\n✓ pulled remote updates")
	return Result{OK: true, Output: out.String()}
}

// Push stages everything, commits, and pushes. With nothing staged it
// stops after the diff check and reports so. A plain push failure is
// retried once with upstream tracking, which covers the first push of a
// new branch.
func (r *Reconciler) Push(ctx context.Context, remoteURL, message, branch string) Result {
	if res, ok := r.requireIndependent(ctx); !ok {
		return res
	}
	if res, ok := r.requireRemote(ctx, remoteURL); !ok {
		return res
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = fmt.Sprintf("update data (%s)", time.Now().Format("2006-01-02 15:04:05"))
	}

	var out strings.Builder

	res := r.runner.Run(ctx, r.dataDir, "add", "-A")
	writeSection(&out, "git add -A", res)
	if !res.Ok() {
		out.WriteString("\n✗ git add failed")
		return Result{OK: false, Output: out.String()}
	}

	diff := r.runner.Run(ctx, r.dataDir, "diff", "--cached", "--name-only")
	if strings.TrimSpace(diff.Stdout) == "" {
		return Result{OK: true, Output: "nothing to commit, data is up to date"}
	}
	fmt.Fprintf(&out, "\nchanged files:\n%s\n", diff.Stdout)

	res = r.runner.Run(ctx, r.dataDir, "commit", "-m", message)
	writeSection(&out, "git commit", res)
	if !res.Ok() {
		out.WriteString("\n✗ git commit failed")
		return Result{OK: false, Output: out.String()}
	}

	res = r.runner.Run(ctx, r.dataDir, "push")
	writeSection(&out, "git push", res)
	if res.Ok() {
		r.touchConfig()
		out.WriteString("\n✓ pushed to remote")
		return Result{OK: true, Output: out.String()}
	}

	// First push of this branch may need an upstream.
	upstream := r.currentBranch(ctx)
	if upstream == "" {
		upstream = branch
	}
	res = r.runner.Run(ctx, r.dataDir, "push", "-u", "origin", upstream)
	writeSection(&out, "git push -u origin "+upstream, res)
	if !res.Ok() {
		out.WriteString("\n✗ push failed")
		return Result{OK: false, Output: out.String()}
	}

	r.touchConfig()
	out.WriteString("\n✓ pushed to remote (upstream set)")
	return Result{OK: true, Output: out.String()}
}

// Status reports the repository state, current branch, remote, working
// tree dirtiness, and last commit. It succeeds in every state; the output
// distinguishes them.
func (r *Reconciler) Status(ctx context.Context) Result {
	state := r.DetectState(ctx)

	var out strings.Builder
	fmt.Fprintf(&out, "data directory: %s\nstate: %s\n", r.dataDir, state)

	switch state {
	case StateAbsent:
		out.WriteString("\nthe data directory does not exist; clone a remote to create it")
		return Result{OK: true, Output: out.String()}
	case StateNotARepo:
		out.WriteString("\nthe data directory is not under version control; clone a remote first")
		return Result{OK: true, Output: out.String()}
	case StateParentTracked:
		out.WriteString("\nthe data directory belongs to an enclosing repository;\n" +
			"clone a dedicated data remote to version it independently")
		return Result{OK: true, Output: out.String()}
	}

	fmt.Fprintf(&out, "branch: %s\n", r.currentBranch(ctx))
	fmt.Fprintf(&out, "remote: %s\n", r.remoteURL(ctx))

	status := r.runner.Run(ctx, r.dataDir, "status", "--porcelain")
	dirty := strings.TrimSpace(status.Stdout)
	if dirty == "" {
		out.WriteString("working tree: clean\n")
	} else {
		fmt.Fprintf(&out, "working tree: %d changed path(s)\n", len(strings.Split(dirty, "\n")))
	}

	last := r.runner.Run(ctx, r.dataDir, "log", "-1", "--oneline")
	if last.Ok() {
		fmt.Fprintf(&out, "last commit: %s\n", firstLine(last.Stdout))
	}

	return Result{OK: true, Output: out.String()}
}

// requireIndependent is the shared precondition for pull and push: detect
// the state and, when it is anything but an independent repository, build
// the refusal diagnostic without invoking the operation.
func (r *Reconciler) requireIndependent(ctx context.Context) (Result, bool) {
	switch state := r.DetectState(ctx); state {
	case StateIndependent:
		return Result{}, true
	case StateAbsent:
		return Result{OK: false, Output: "✗ data directory does not exist\nclone your data remote first"}, false
	case StateParentTracked:
		return Result{OK: false, Output: "✗ data directory is tracked by an enclosing repository, not its own\n" +
			"clone a dedicated data remote so it can sync independently"}, false
	default:
		return Result{OK: false, Output: "✗ data directory is not a git repository\nclone your data remote first"}, false
	}
}

// requireRemote refuses when the repository's origin differs from the
// remote the caller expects. An empty expectation skips the check.
func (r *Reconciler) requireRemote(ctx context.Context, remoteURL string) (Result, bool) {
	if remoteURL == "" {
		return Result{}, true
	}
	existing := r.remoteURL(ctx)
	if existing == remoteURL {
		return Result{}, true
	}
	return Result{OK: false, Output: fmt.Sprintf(
		"✗ data repository points at a different remote\n  configured: %s\n  requested:  %s\n"+
			"re-clone (with backup) to switch remotes", existing, remoteURL)}, false
}

// persistConfig records a successful clone target.
func (r *Reconciler) persistConfig(remoteURL, branch string) {
	cfg := Config{
		RepoURL:     remoteURL,
		Branch:      branch,
		Cloned:      true,
		LastUpdated: time.Now().UTC(),
	}
	if err := SaveConfig(r.configPath, cfg); err != nil {
		r.log.Warn("saving git sync config failed", zap.Error(err))
	}
}

// touchConfig refreshes the last-updated stamp on the cached config.
func (r *Reconciler) touchConfig() {
	cfg := LoadConfig(r.configPath)
	cfg.LastUpdated = time.Now().UTC()
	if err := SaveConfig(r.configPath, cfg); err != nil {
		r.log.Warn("saving git sync config failed", zap.Error(err))
	}
}

// writeSection appends one command transcript to the operation output.
func writeSection(out *strings.Builder, header string, res CmdResult) {
	fmt.Fprintf(out, "=== %s ===\nexit: %d\n", header, res.ExitCode)
	if s := strings.TrimSpace(res.Stdout); s != "" {
		fmt.Fprintf(out, "stdout:\n%s\n", s)
	}
	if s := strings.TrimSpace(res.Stderr); s != "" {
		fmt.Fprintf(out, "stderr:\n%s\n", s)
	}
}

// samePath compares two paths after cleaning and resolving symlinks.
func samePath(a, b string) bool {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		ra = filepath.Clean(a)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		rb = filepath.Clean(b)
	}
	return ra == rb
}
