// 账本约束数据结构定义
package ledger

// PureData is a bucket/key/value triple written by a contract invocation.
type PureData struct {
	Bucket string
	Key    []byte
	Value  []byte
}

func (t *PureData) GetBucket() string {
	if t == nil {
		return ""
	}
	return t.Bucket
}

func (t *PureData) GetKey() []byte {
	if t == nil {
		return nil
	}
	return t.Key
}

func (t *PureData) GetValue() []byte {
	if t == nil {
		return nil
	}
	return t.Value
}

// VersionedData is a PureData stamped with the transaction that last wrote it.
// An empty RefTxid means the key was never written.
type VersionedData struct {
	PureData  *PureData
	RefTxid   []byte
	RefOffset int32
}

func (t *VersionedData) GetPureData() *PureData {
	if t == nil {
		return nil
	}
	return t.PureData
}

func (t *VersionedData) GetRefTxid() []byte {
	if t == nil {
		return nil
	}
	return t.RefTxid
}

func (t *VersionedData) GetRefOffset() int32 {
	if t == nil {
		return 0
	}
	return t.RefOffset
}
