package manager

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gammazero/deque"
	"github.com/patrickmn/go-cache"

	"github.com/xuperchain/xedition/kernel/contract"
	"github.com/xuperchain/xedition/kernel/contract/sandbox"
	"github.com/xuperchain/xedition/lib/metrics"
	"github.com/xuperchain/xedition/lib/timer"
)

const (
	taskMessage = iota
	taskReply
)

// task is one entry of the dispatch queue.
type task struct {
	kind int
	// sender emitted the message, or receives the reply
	sender string
	sub    contract.SubMessage
	reply  *contract.Reply
}

// executor runs one transaction against a sandbox.
type executor struct {
	m     *managerImpl
	tx    *contract.Tx
	state *sandbox.XMCache
	meter *meter

	// instances created by this transaction
	pending    map[string]bool
	events     []contract.Event
	dispatched int
}

func (m *managerImpl) Submit(tx *contract.Tx) (*contract.TxResult, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	defer observeCall("Submit", time.Now())

	xtimer := timer.NewXTimer()
	result, err := m.submit(tx, xtimer)
	if err != nil {
		metrics.TxCounter.WithLabelValues("failed").Inc()
		m.log.Warn("tx failed", "txid", txidString(tx), "err", err, "timer", xtimer.Print())
		return nil, err
	}
	metrics.TxCounter.WithLabelValues("committed").Inc()
	metrics.TxGasHistogram.Observe(float64(result.GasUsed))
	m.log.Info("tx committed", "txid", txidString(tx), "events", len(result.Events),
		"gas", result.GasUsed, "timer", xtimer.Print())
	return result, nil
}

func (m *managerImpl) submit(tx *contract.Tx, xtimer *timer.XTimer) (*contract.TxResult, error) {
	if tx == nil || len(tx.Txid) == 0 {
		return nil, contract.ErrParameter.More("tx without txid")
	}
	if tx.Initiator == "" {
		return nil, contract.ErrParameter.More("tx without initiator")
	}
	if err := tx.Msg.Validate(); err != nil {
		return nil, err
	}
	if m.cfg.EnableSignature {
		if err := m.verifyAuth(tx); err != nil {
			return nil, err
		}
	}
	if err := m.checkInitiator(tx); err != nil {
		return nil, err
	}
	if err := m.checkDuplicate(tx.Txid); err != nil {
		return nil, err
	}

	limits := tx.ResourceLimits
	if limits == (contract.Limits{}) {
		limits = m.cfg.ResourceLimits
	}
	exec := &executor{
		m:       m,
		tx:      tx,
		state:   sandbox.NewXModelCache(m.model),
		meter:   newMeter(limits),
		pending: make(map[string]bool),
	}
	result, err := exec.run()
	if err != nil {
		return nil, err
	}
	xtimer.Mark("execute")

	rwset := exec.state.RWSet()
	if err := m.verifyReadSet(rwset); err != nil {
		return nil, err
	}
	if err := m.model.Commit(tx.Txid, rwset.WSet); err != nil {
		return nil, err
	}
	xtimer.Mark("commit")
	m.txCache.Set(string(tx.Txid), true, cache.DefaultExpiration)

	result.Txid = tx.Txid
	result.Events = exec.events
	result.ResourceUsed = exec.meter.used
	result.GasUsed = exec.meter.used.TotalGas(&m.cfg.GasPrice)
	return result, nil
}

func (m *managerImpl) checkDuplicate(txid []byte) error {
	if _, found := m.txCache.Get(string(txid)); found {
		return contract.ErrTxDuplicate.More("txid %x", txid)
	}
	checker, ok := m.model.(txChecker)
	if !ok {
		return nil
	}
	exist, err := checker.HasTx(txid)
	if err != nil {
		return err
	}
	if exist {
		return contract.ErrTxDuplicate.More("txid %x", txid)
	}
	return nil
}

// verifyReadSet makes sure nothing the transaction read has changed under it.
func (m *managerImpl) verifyReadSet(rwset *contract.RWSet) error {
	for _, r := range rwset.RSet {
		pd := r.GetPureData()
		cur, err := m.model.Get(pd.GetBucket(), pd.GetKey())
		if err != nil && !sandbox.IsNotFound(err) {
			return err
		}
		if !bytes.Equal(cur.GetRefTxid(), r.GetRefTxid()) || cur.GetRefOffset() != r.GetRefOffset() {
			return contract.ErrInternal.More("read set changed: %s/%s", pd.GetBucket(), pd.GetKey())
		}
	}
	return nil
}

func (e *executor) run() (*contract.TxResult, error) {
	root := &task{
		kind:   taskMessage,
		sender: e.tx.Initiator,
		sub:    contract.SubMessage{Msg: e.tx.Msg, ReplyOn: contract.ReplyNever},
	}
	rootResult, err := e.runTask(root)
	if err != nil {
		return nil, err
	}

	var q deque.Deque
	e.schedule(&q, root, rootResult)
	for q.Len() > 0 {
		t := q.PopFront().(*task)
		e.dispatched++
		if e.dispatched > e.m.cfg.MaxMessages {
			return nil, contract.ErrTooManyMessages.More("limit %d", e.m.cfg.MaxMessages)
		}
		res, err := e.runTask(t)
		if err != nil {
			return nil, err
		}
		e.schedule(&q, t, res)
	}

	return &contract.TxResult{
		ContractAddress: rootResult.address,
		Data:            rootResult.data,
	}, nil
}

type taskResult struct {
	// address of the instance that ran
	address    string
	created    bool
	data       []byte
	attributes []contract.Attribute
	messages   []contract.SubMessage
}

// schedule puts what a finished task asks for at the front of the queue:
// its messages in order, then the reply owed to its sender.
func (e *executor) schedule(q *deque.Deque, t *task, res *taskResult) {
	if t.kind == taskMessage && t.sub.ReplyOn == contract.ReplySuccess {
		result := contract.SubMsgResult{
			Data:       res.data,
			Attributes: res.attributes,
		}
		if res.created {
			result.ContractAddress = res.address
		}
		q.PushFront(&task{
			kind:   taskReply,
			sender: t.sender,
			reply:  &contract.Reply{ID: t.sub.ID, Result: result},
		})
	}
	for i := len(res.messages) - 1; i >= 0; i-- {
		q.PushFront(&task{
			kind:   taskMessage,
			sender: res.address,
			sub:    res.messages[i],
		})
	}
}

func (e *executor) runTask(t *task) (*taskResult, error) {
	switch {
	case t.kind == taskReply:
		metrics.ContractMessageCounter.WithLabelValues("reply").Inc()
		args, err := t.reply.Args()
		if err != nil {
			return nil, err
		}
		return e.execute(t.sender, "", contract.ReplyMethod, args)
	case t.sub.Msg.Instantiate != nil:
		metrics.ContractMessageCounter.WithLabelValues("instantiate").Inc()
		return e.instantiate(t.sender, t.sub.Msg.Instantiate)
	default:
		metrics.ContractMessageCounter.WithLabelValues("execute").Inc()
		msg := t.sub.Msg.Execute
		if msg.Method == contract.ReplyMethod || msg.Method == instantiateMethod {
			return nil, contract.ErrForbidden.More("method %s can not be called directly", msg.Method)
		}
		return e.execute(msg.Contract, t.sender, msg.Method, msg.Args)
	}
}

func (e *executor) instantiate(creator string, msg *contract.InstantiateMsg) (*taskResult, error) {
	code, err := loadCodeInfo(e.state, msg.CodeID)
	if err != nil {
		return nil, err
	}
	seq, err := nextSeq(e.state, contractSeqKey)
	if err != nil {
		return nil, err
	}
	info := &contract.ContractInfo{
		Address: instanceAddress(code.CodeID, creator, seq),
		CodeID:  code.CodeID,
		Name:    code.Name,
		Creator: creator,
		Label:   msg.Label,
	}
	if err := saveContractInfo(e.state, info); err != nil {
		return nil, err
	}
	e.pending[info.Address] = true

	res, err := e.invoke(info, creator, instantiateMethod, msg.Args)
	if err != nil {
		return nil, err
	}
	res.created = true
	return res, nil
}

func (e *executor) execute(address, caller, method string, args map[string][]byte) (*taskResult, error) {
	info, err := e.m.lookupInstance(e.state, address, e.pending)
	if err != nil {
		return nil, err
	}
	return e.invoke(info, caller, method, args)
}

func (e *executor) invoke(info *contract.ContractInfo, caller, method string, args map[string][]byte) (*taskResult, error) {
	begin := time.Now()
	ctx := newContext(&contract.ContextConfig{
		State:          e.state,
		Initiator:      e.tx.Initiator,
		AuthRequire:    e.tx.AuthRequire,
		Caller:         caller,
		ContractName:   info.Name,
		Address:        info.Address,
		ResourceLimits: e.meter.limit,
		CanInitialize:  method == instantiateMethod,
	}, e.m.registry, e.meter)

	resp, err := ctx.Invoke(method, args)
	code := "OK"
	if err != nil {
		code = fmt.Sprintf("%d", contract.CastError(err).Code)
	}
	metrics.ContractInvokeCounter.WithLabelValues(info.Name, method, code).Inc()
	metrics.ContractInvokeHistogram.WithLabelValues(info.Name, method).Observe(time.Since(begin).Seconds())
	if e.m.cfg.EnableDebugLog {
		e.m.log.Debug("contract invoked", "contract", info.Address, "code", info.Name,
			"method", method, "caller", caller, "result", code)
	}
	if err != nil {
		return nil, err
	}

	e.events = append(e.events, contract.Event{
		Contract:   info.Address,
		Method:     method,
		Attributes: resp.Attributes,
	})
	return &taskResult{
		address:    info.Address,
		data:       resp.Body,
		attributes: resp.Attributes,
		messages:   resp.Messages,
	}, nil
}

func txidString(tx *contract.Tx) string {
	if tx == nil {
		return ""
	}
	return hex.EncodeToString(tx.Txid)
}
