package services

import (
	"context"
	"fmt"

	"smc/internal/logger"
	"smc/internal/proc"
	"smc/internal/utils"

	"github.com/spf13/afero"
)

/**
 * Bootstrap 初始化工作目录，并可选地克隆模板仓库
 * @param {context.Context} ctx - Cancels git
 * @param {*WorkDirectory} work - Working directory to initialise
 * @param {proc.Executor} executor - Runs git through the configured shell
 * @param {string} repo - Git repository holding templates, empty skips cloning
 * @param {string} branch - Branch to clone, empty uses the remote default
 * @returns {error} Layout, clone or non-empty templates/ error
 */
func Bootstrap(ctx context.Context, work *WorkDirectory, executor proc.Executor, repo, branch string) error {
	if err := work.Init(); err != nil {
		return err
	}
	if repo == "" {
		return nil
	}

	empty, err := afero.IsEmpty(work.Fs, work.TemplatesDir())
	if err != nil {
		return &ServiceError{Op: OpInit, Service: work.TemplatesDir(), Err: err}
	}
	if !empty {
		return &ServiceError{Op: OpInit, Service: work.TemplatesDir(), Err: fmt.Errorf("%w: directory is not empty", ErrAlreadyExists)}
	}

	args := []string{"--depth", "1"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, repo, work.TemplatesDir())

	logger.Infof("Cloning templates from %s", repo)
	status, err := proc.Run(ctx, executor, proc.Command{
		Title:  "init/git-clone",
		Script: utils.GetCommandLine("git clone", args),
		Dir:    work.Path,
	})
	if err != nil {
		return &ServiceError{Op: OpInit, Service: repo, Err: err}
	}
	if !status.Success() {
		return &ServiceError{Op: OpInit, Service: repo, Err: fmt.Errorf("git clone: %s", status)}
	}
	return nil
}
