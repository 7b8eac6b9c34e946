package contract

import (
	"fmt"
	"math"
)

// Limits describes the resources an invocation may consume.
type Limits struct {
	Cpu    int64
	Memory int64
	Disk   int64
	XFee   int64
}

// MaxLimits is used when no limit is configured.
var MaxLimits = Limits{
	Cpu:    math.MaxInt64,
	Memory: math.MaxInt64,
	Disk:   math.MaxInt64,
	XFee:   math.MaxInt64,
}

func (l *Limits) TotalGas(gasPrice *GasPrice) int64 {
	if gasPrice == nil {
		return 0
	}
	return roundup(l.Cpu, gasPrice.CpuRate) +
		roundup(l.Memory, gasPrice.MemRate) +
		roundup(l.Disk, gasPrice.DiskRate) +
		l.XFee*gasPrice.XfeeRate
}

func roundup(n, scale int64) int64 {
	if scale == 0 {
		return 0
	}
	return (n + scale - 1) / scale
}

// Add accumulates delta into l.
func (l *Limits) Add(delta Limits) *Limits {
	l.Cpu += delta.Cpu
	l.Memory += delta.Memory
	l.Disk += delta.Disk
	l.XFee += delta.XFee
	return l
}

// Sub subtracts delta from l.
func (l *Limits) Sub(delta Limits) *Limits {
	l.Cpu -= delta.Cpu
	l.Memory -= delta.Memory
	l.Disk -= delta.Disk
	l.XFee -= delta.XFee
	return l
}

// Exceed reports whether any dimension of l is greater than the same dimension of limit.
func (l *Limits) Exceed(limit Limits) bool {
	return l.Cpu > limit.Cpu ||
		l.Memory > limit.Memory ||
		l.Disk > limit.Disk ||
		l.XFee > limit.XFee
}

func (l Limits) String() string {
	return fmt.Sprintf("cpu:%d,memory:%d,disk:%d,xfee:%d", l.Cpu, l.Memory, l.Disk, l.XFee)
}

// GasPrice converts used resources into a single gas figure.
type GasPrice struct {
	CpuRate  int64 `yaml:"cpuRate" json:"cpu_rate"`
	MemRate  int64 `yaml:"memRate" json:"mem_rate"`
	DiskRate int64 `yaml:"diskRate" json:"disk_rate"`
	XfeeRate int64 `yaml:"xfeeRate" json:"xfee_rate"`
}
