package contract

import "testing"

func TestResponse_HasError(t *testing.T) {
	type fields struct {
		Status  int
		Message string
		Body    []byte
	}
	tests := []struct {
		name   string
		fields fields
		want   bool
	}{
		{
			name: "no error",
			fields: fields{
				Status: StatusOK,
			},
			want: false,
		},
		{
			name: "threshold error",
			fields: fields{
				Status: StatusErrorThreshold,
			},
			want: true,
		},
		{
			name: "normal error",
			fields: fields{
				Status: StatusError,
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{
				Status:  tt.fields.Status,
				Message: tt.fields.Message,
				Body:    tt.fields.Body,
			}
			if got := r.HasError(); got != tt.want {
				t.Errorf("Response.HasError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponse_Messages(t *testing.T) {
	resp := &Response{Status: StatusOK}
	resp.AddAttribute("method", "instantiate").
		AddSubMessage(SubMessage{
			ID:      1,
			Msg:     Msg{Instantiate: &InstantiateMsg{CodeID: 2}},
			ReplyOn: ReplySuccess,
		}).
		AddMessage(Msg{Execute: &ExecuteMsg{Contract: "addr", Method: "Mint"}})

	if len(resp.Attributes) != 1 || resp.Attributes[0].Value != "instantiate" {
		t.Fatalf("unexpected attributes %v", resp.Attributes)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expect 2 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].ReplyOn != ReplySuccess || resp.Messages[1].ReplyOn != ReplyNever {
		t.Fatalf("unexpected reply modes %v %v", resp.Messages[0].ReplyOn, resp.Messages[1].ReplyOn)
	}
}

func TestMsg_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Msg
		wantErr bool
	}{
		{"empty", Msg{}, true},
		{"both", Msg{Instantiate: &InstantiateMsg{CodeID: 1}, Execute: &ExecuteMsg{Contract: "a", Method: "b"}}, true},
		{"no code id", Msg{Instantiate: &InstantiateMsg{}}, true},
		{"no method", Msg{Execute: &ExecuteMsg{Contract: "a"}}, true},
		{"instantiate", Msg{Instantiate: &InstantiateMsg{CodeID: 1}}, false},
		{"execute", Msg{Execute: &ExecuteMsg{Contract: "a", Method: "b"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.msg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Msg.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReplyArgs(t *testing.T) {
	reply := &Reply{ID: 1, Result: SubMsgResult{ContractAddress: "collection"}}
	args, err := reply.Args()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReplyFromArgs(args)
	if err != nil {
		t.Fatal(err)
	}
	addr, err := ParseReplyInstantiate(got)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 1 || addr != "collection" {
		t.Fatalf("unexpected reply %+v", got)
	}

	if _, err := ReplyFromArgs(map[string][]byte{}); err == nil {
		t.Fatal("expect error for missing reply")
	}
	if _, err := ParseReplyInstantiate(&Reply{ID: 1}); err == nil {
		t.Fatal("expect error for reply without address")
	}
}

func TestLimits(t *testing.T) {
	var used Limits
	used.Add(Limits{Cpu: 2, Disk: 10, XFee: 1}).Add(Limits{Cpu: 1})
	if used.Cpu != 3 || used.Disk != 10 || used.XFee != 1 {
		t.Fatalf("unexpected limits %s", used)
	}
	if used.Exceed(Limits{Cpu: 3, Disk: 10, XFee: 1}) {
		t.Fatal("limits equal to the cap must not exceed")
	}
	if !used.Exceed(Limits{Cpu: 2, Disk: 10, XFee: 1}) {
		t.Fatal("expect cpu to exceed")
	}
	if used.Exceed(MaxLimits) {
		t.Fatal("nothing exceeds MaxLimits")
	}
	gas := used.TotalGas(&GasPrice{CpuRate: 2, DiskRate: 5, XfeeRate: 3})
	// cpu 3/2 rounds up to 2, disk 10/5 is 2, xfee 1*3
	if gas != 7 {
		t.Fatalf("expect gas 7, got %d", gas)
	}
}

func TestError(t *testing.T) {
	err := ErrUnauthorized.More("price %d", 0)
	if !err.Equal(ErrUnauthorized) {
		t.Fatal("More must keep the code")
	}
	if err.Error() != "Err:400-40100-unauthorized+price 0" {
		t.Fatalf("unexpected message %s", err.Error())
	}
	if CastError(nil) != nil {
		t.Fatal("nil must cast to nil")
	}
	if !CastError(err).Equal(ErrUnauthorized) {
		t.Fatal("contract errors must cast to themselves")
	}
}
