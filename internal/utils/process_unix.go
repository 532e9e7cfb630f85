//go:build unix

package utils

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// SetNewPG 设置进程属性，让子进程拥有独立的进程组，便于整组终止
func SetNewPG(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

/**
 * Kill a process together with every process in its group
 * @param {*os.Process} process - Group leader started with SetNewPG
 * @returns {error} Returns error if the signal could not be delivered
 * @description
 * - Sends SIGKILL to the negative PID, reaching background children of a script
 * - A group that already exited is not an error
 */
func KillProcessGroup(process *os.Process) error {
	if process == nil {
		return nil
	}
	err := syscall.Kill(-process.Pid, syscall.SIGKILL)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return process.Kill()
}
