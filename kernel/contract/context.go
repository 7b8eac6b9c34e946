package contract

const (
	// StatusOK is used when contract successfully ends.
	StatusOK = 200
	// StatusErrorThreshold is the status dividing line for the normal operation of the contract
	StatusErrorThreshold = 400
	// StatusError is used when contract fails.
	StatusError = 500
)

// Context define context interface
type Context interface {
	Invoke(method string, args map[string][]byte) (*Response, error)
	ResourceUsed() Limits
	Release() error
}

// Response is the result of the contract run
type Response struct {
	// Status 用于反映合约的运行结果的错误码
	Status int `json:"status"`
	// Message 用于携带一些有用的debug信息
	Message string `json:"message"`
	// Body 字段用于存储合约执行的结果
	Body []byte `json:"body"`

	// Attributes are key/value pairs describing what the invocation did.
	Attributes []Attribute `json:"attributes,omitempty"`
	// Messages are dispatched by the host after the invocation returns.
	Messages []SubMessage `json:"messages,omitempty"`
}

// Attribute is a single event attribute.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *Response) HasError() bool {
	return r.Status >= StatusErrorThreshold
}

// AddAttribute appends an attribute and returns the response for chaining.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// AddMessage queues a message that does not expect a reply.
func (r *Response) AddMessage(msg Msg) *Response {
	r.Messages = append(r.Messages, SubMessage{Msg: msg, ReplyOn: ReplyNever})
	return r
}

// AddSubMessage queues a message whose outcome is reported back to the
// emitter's Reply method according to sub.ReplyOn.
func (r *Response) AddSubMessage(sub SubMessage) *Response {
	r.Messages = append(r.Messages, sub)
	return r
}

// ContextConfig define the config of context
type ContextConfig struct {
	State StateSandbox

	Initiator   string
	AuthRequire []string

	// Caller is the account or contract address that triggered the invocation.
	// It is empty when the host delivers a reply.
	Caller string

	// ContractName is the code name the instance was created from.
	ContractName string
	// Address is the address of the running instance.
	Address string

	ResourceLimits Limits

	// Whether contract can be initialized
	CanInitialize bool
}
