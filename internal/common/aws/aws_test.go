// internal/common/aws/aws_test.go
package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSES struct{ mock.Mock }

func (m *mockSES) SendEmail(ctx context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, in)
	if out, ok := args.Get(0).(*ses.SendEmailOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	if out, ok := args.Get(0).(*sns.PublishOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSESClient_Send(t *testing.T) {
	api := &mockSES{}
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return awssdk.ToString(in.Source) == "noreply@pathways.example" &&
			in.Destination.ToAddresses[0] == "user@example.com" &&
			awssdk.ToString(in.Message.Subject.Data) == "Your pathways" &&
			in.Message.Body.Html != nil && in.Message.Body.Text == nil
	})).Return(&ses.SendEmailOutput{MessageId: awssdk.String("msg-1")}, nil)

	c := NewSESClientWithAPI(api, "noreply@pathways.example")
	id, err := c.Send(context.Background(), Email{To: "user@example.com", Subject: "Your pathways", HTMLBody: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	api.AssertExpectations(t)
}

func TestSESClient_SendErrors(t *testing.T) {
	api := &mockSES{}
	c := NewSESClientWithAPI(api, "noreply@pathways.example")

	_, err := c.Send(context.Background(), Email{Subject: "x"})
	assert.Error(t, err)

	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))
	_, err = c.Send(context.Background(), Email{To: "user@example.com", TextBody: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSNSClient_SendSMS(t *testing.T) {
	api := &mockSNS{}
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		_, hasSender := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
		return awssdk.ToString(in.PhoneNumber) == "+61400000000" && hasSender
	})).Return(&sns.PublishOutput{MessageId: awssdk.String("sms-1")}, nil)

	c := NewSNSClientWithAPI(api, "PRPATH")
	id, err := c.SendSMS(context.Background(), "+61400000000", "3 pathways match")
	require.NoError(t, err)
	assert.Equal(t, "sms-1", id)

	_, err = c.SendSMS(context.Background(), "", "x")
	assert.Error(t, err)
}
