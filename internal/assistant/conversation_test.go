package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	answer    string
	err       error
	questions []string
}

func (s *stubClient) Ask(_ context.Context, _ Book, q string) (string, error) {
	s.questions = append(s.questions, q)
	return s.answer, s.err
}

func TestConversationSend(t *testing.T) {
	testCases := []struct {
		name   string
		client *stubClient
		want   string
	}{
		{name: "answer", client: &stubClient{answer: "是的"}, want: "是的"},
		{name: "empty answer", client: &stubClient{answer: "  "}, want: EmptyAnswer},
		{name: "failure", client: &stubClient{err: errors.New("timeout")}, want: FallbackAnswer},
		{name: "missing key", client: &stubClient{err: ErrNoCredential}, want: FallbackAnswer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConversation(tc.client, threeBody)

			reply, ok := c.Send(context.Background(), " 问题 ")
			require.True(t, ok)
			assert.Equal(t, RoleModel, reply.Role)
			assert.Equal(t, tc.want, reply.Text)

			msgs := c.Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, Message{Role: RoleUser, Text: "问题"}, Message{Role: msgs[0].Role, Text: msgs[0].Text})
			assert.Equal(t, tc.want, msgs[1].Text)
			assert.Equal(t, []string{"问题"}, tc.client.questions)
		})
	}
}

func TestConversationIgnoresBlank(t *testing.T) {
	stub := &stubClient{answer: "x"}
	c := NewConversation(stub, threeBody)

	_, ok := c.Send(context.Background(), "   ")
	assert.False(t, ok)
	assert.Empty(t, c.Messages())
	assert.Empty(t, stub.questions)
}

func TestConversationWithoutClient(t *testing.T) {
	c := NewConversation(nil, threeBody)
	reply, ok := c.Send(context.Background(), "hi")
	require.True(t, ok)
	assert.Equal(t, FallbackAnswer, reply.Text)
	assert.NotEqual(t, c.ID.String(), NewConversation(nil, threeBody).ID.String())
}
