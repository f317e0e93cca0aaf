package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
}

type fakeSES struct {
	input *ses.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	return &ses.SendEmailOutput{MessageId: awssdk.String("mail-1")}, nil
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestEventPublisher_Publish(t *testing.T) {
	api := &fakeSNS{}
	pub := NewEventPublisher(api, "arn:aws:sns:us-east-1:123:rfp-events")

	id, err := pub.Publish(context.Background(), "rfp.synced", map[string]string{"rfpId": "rfp-001"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	assert.Equal(t, "arn:aws:sns:us-east-1:123:rfp-events", awssdk.ToString(api.input.TopicArn))
	assert.Equal(t, "rfp.synced", awssdk.ToString(api.input.MessageAttributes["eventType"].StringValue))

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(awssdk.ToString(api.input.Message)), &body))
	assert.Equal(t, "rfp-001", body["rfpId"])
}

func TestEventPublisher_PublishError(t *testing.T) {
	pub := NewEventPublisher(&fakeSNS{err: fmt.Errorf("throttled")}, "arn")

	_, err := pub.Publish(context.Background(), "rfp.synced", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestMailer_Send(t *testing.T) {
	api := &fakeSES{}
	m := NewMailer(api, "noreply@example.com")

	require.NoError(t, m.Send(context.Background(), "jane@example.com", "Assigned", "You have a new RFP"))
	assert.Equal(t, "noreply@example.com", awssdk.ToString(api.input.Source))
	assert.Equal(t, []string{"jane@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "Assigned", awssdk.ToString(api.input.Message.Subject.Data))

	assert.Error(t, m.Send(context.Background(), "", "s", "b"))
}

func TestObjectStore_Put(t *testing.T) {
	api := &fakeS3{}
	store := NewObjectStore(api, "rfp-files", "us-east-1", "")

	url, err := store.Put(context.Background(), "rfp-documents/rfp-001/abc-My RFP.pdf", []byte("pdf"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://rfp-files.s3.us-east-1.amazonaws.com/rfp-documents/rfp-001/abc-My%20RFP.pdf", url)
	assert.Equal(t, "rfp-files", awssdk.ToString(api.input.Bucket))
	assert.Equal(t, []byte("pdf"), api.body)
}

func TestObjectStore_PublicBaseURL(t *testing.T) {
	store := NewObjectStore(&fakeS3{}, "b", "eu-west-1", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/knowledge-base/x.pdf", store.URL("knowledge-base/x.pdf"))
}
