package metrics

import (
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "xedition"

	SubsystemContract = "contract"
	SubsystemTx       = "tx"
	SubsystemState    = "state"

	LabelContractName   = "contract_name"
	LabelContractMethod = "contract_method"
	LabelContractCode   = "contract_code"
	LabelMessageType    = "message"
	LabelTxResult       = "result"
	LabelCacheResult    = "result"
	LabelCallMethod     = "method"
)

// common
var (
	// 函数调用
	CallMethodCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: LabelCallMethod,
			Name:      "call_total",
			Help:      "Total number of call method.",
		},
		[]string{LabelCallMethod})
	CallMethodHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: LabelCallMethod,
			Name:      "cost_seconds",
			Help:      "Histogram of call method cost latency.",
			Buckets:   prom.DefBuckets,
		},
		[]string{LabelCallMethod})
)

// contract
var (
	ContractInvokeCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_total",
			Help:      "Total number of contract invocations.",
		},
		[]string{LabelContractName, LabelContractMethod, LabelContractCode})
	ContractInvokeHistogram = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "invoke_seconds",
			Help:      "Histogram of invoke contract latency.",
		},
		[]string{LabelContractName, LabelContractMethod})
	ContractMessageCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "message_total",
			Help:      "Total number of dispatched contract messages.",
		},
		[]string{LabelMessageType})
	InstanceCacheCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemContract,
			Name:      "instance_cache_total",
			Help:      "Total number of instance cache lookups.",
		},
		[]string{LabelCacheResult})
)

// tx
var (
	TxCounter = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemTx,
			Name:      "handled_total",
			Help:      "Total number of handled tx.",
		},
		[]string{LabelTxResult})
	TxGasHistogram = prom.NewHistogram(
		prom.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SubsystemTx,
			Name:      "gas_used",
			Help:      "Histogram of gas used by committed tx.",
			Buckets:   prom.ExponentialBuckets(10, 4, 10),
		})
)

// state
var (
	StateWriteCounter = prom.NewCounter(
		prom.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemState,
			Name:      "write_total",
			Help:      "Total number of committed state writes.",
		})
)

var registerOnce sync.Once

// RegisterMetrics registers every collector with the default registry once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prom.MustRegister(CallMethodCounter)
		prom.MustRegister(CallMethodHistogram)

		prom.MustRegister(ContractInvokeCounter)
		prom.MustRegister(ContractInvokeHistogram)
		prom.MustRegister(ContractMessageCounter)
		prom.MustRegister(InstanceCacheCounter)

		prom.MustRegister(TxCounter)
		prom.MustRegister(TxGasHistogram)

		prom.MustRegister(StateWriteCounter)
	})
}
