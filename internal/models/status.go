package models

// ServiceStatus is the last observed state of a service.
type ServiceStatus string

const (
	// 尚未执行健康检查
	StatusUnknown ServiceStatus = "unknown"
	// 健康检查返回0
	StatusRunning ServiceStatus = "running"
	// 健康检查返回非0
	StatusStopped ServiceStatus = "stopped"
	// enable缺省或为false，不执行任何脚本
	StatusDisabled ServiceStatus = "disabled"
)

// AllStatuses lists every status in display order.
var AllStatuses = []ServiceStatus{StatusUnknown, StatusRunning, StatusStopped, StatusDisabled}

func (s ServiceStatus) String() string {
	return string(s)
}
