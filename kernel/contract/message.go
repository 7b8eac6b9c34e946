package contract

import (
	"encoding/json"
	"fmt"
)

// ReplyOn controls whether the host calls back the emitter of a sub message.
type ReplyOn int

const (
	// ReplyNever dispatches the message without a callback.
	ReplyNever ReplyOn = iota
	// ReplySuccess calls the emitter's Reply method once the message succeeded.
	// A failed message aborts the whole transaction, so there is no error reply.
	ReplySuccess
)

func (r ReplyOn) String() string {
	switch r {
	case ReplyNever:
		return "never"
	case ReplySuccess:
		return "success"
	default:
		return fmt.Sprintf("ReplyOn(%d)", int(r))
	}
}

// ReplyMethod is the method the host invokes to deliver a Reply.
const ReplyMethod = "Reply"

// ReplyArgKey is the argument key holding the JSON encoded Reply.
const ReplyArgKey = "reply"

// InstantiateMsg creates a new instance from a stored code.
type InstantiateMsg struct {
	CodeID uint64            `json:"code_id"`
	Label  string            `json:"label"`
	Args   map[string][]byte `json:"args"`
}

// ExecuteMsg calls a method on an existing instance.
type ExecuteMsg struct {
	Contract string            `json:"contract"`
	Method   string            `json:"method"`
	Args     map[string][]byte `json:"args"`
}

// Msg is one outbound action. Exactly one field is set.
type Msg struct {
	Instantiate *InstantiateMsg `json:"instantiate,omitempty"`
	Execute     *ExecuteMsg     `json:"execute,omitempty"`
}

func (m Msg) Validate() error {
	switch {
	case m.Instantiate != nil && m.Execute != nil:
		return ErrParameter.More("message sets both instantiate and execute")
	case m.Instantiate != nil:
		if m.Instantiate.CodeID == 0 {
			return ErrParameter.More("instantiate message without code id")
		}
	case m.Execute != nil:
		if m.Execute.Contract == "" || m.Execute.Method == "" {
			return ErrParameter.More("execute message without contract or method")
		}
	default:
		return ErrParameter.More("empty message")
	}
	return nil
}

// SubMessage is a Msg tagged with a reply id.
type SubMessage struct {
	ID      uint64  `json:"id"`
	Msg     Msg     `json:"msg"`
	ReplyOn ReplyOn `json:"reply_on"`
}

// SubMsgResult is what the host learned from executing a sub message.
type SubMsgResult struct {
	// ContractAddress is set when the message created an instance.
	ContractAddress string      `json:"contract_address,omitempty"`
	Data            []byte      `json:"data,omitempty"`
	Attributes      []Attribute `json:"attributes,omitempty"`
}

// Reply is delivered to the emitter of a SubMessage.
type Reply struct {
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}

// Args encodes the reply as invocation arguments of the Reply method.
func (r *Reply) Args() (map[string][]byte, error) {
	buf, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{ReplyArgKey: buf}, nil
}

// ReplyFromArgs decodes the reply delivered to a Reply method.
func ReplyFromArgs(args map[string][]byte) (*Reply, error) {
	buf, ok := args[ReplyArgKey]
	if !ok || len(buf) == 0 {
		return nil, ErrParameter.More("missing reply")
	}
	reply := new(Reply)
	if err := json.Unmarshal(buf, reply); err != nil {
		return nil, ErrParameter.More("bad reply: %v", err)
	}
	return reply, nil
}

// ParseReplyInstantiate returns the address of the instance created by the
// sub message the reply answers.
func ParseReplyInstantiate(reply *Reply) (string, error) {
	if reply == nil || reply.Result.ContractAddress == "" {
		return "", ErrParameter.More("reply carries no contract address")
	}
	return reply.Result.ContractAddress, nil
}
