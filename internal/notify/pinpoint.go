package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pinpoint"
	"github.com/aws/aws-sdk-go-v2/service/pinpoint/types"

	"imageprocessor/internal/domain"
)

type pinpointSender interface {
	SendMessages(ctx context.Context, params *pinpoint.SendMessagesInput, optFns ...func(*pinpoint.Options)) (*pinpoint.SendMessagesOutput, error)
}

// PinpointNotifier pushes messages through Amazon Pinpoint. An empty
// application id turns every Notify into a skip.
type PinpointNotifier struct {
	client pinpointSender
	appID  string
	now    func() time.Time
}

// NewPinpointNotifier wires a Pinpoint client to an application.
func NewPinpointNotifier(client pinpointSender, appID string) *PinpointNotifier {
	return &PinpointNotifier{client: client, appID: strings.TrimSpace(appID), now: time.Now}
}

// NewPinpointNotifierFromConfig builds the SDK client from an aws.Config.
func NewPinpointNotifierFromConfig(cfg aws.Config, appID string) *PinpointNotifier {
	return NewPinpointNotifier(pinpoint.NewFromConfig(cfg), appID)
}

// Notify sends a single PUSH message addressed to userID.
func (n *PinpointNotifier) Notify(ctx context.Context, userID string, detections []domain.DetectionResult) Result {
	if n == nil || n.appID == "" {
		return Skipped("PINPOINT_APP_ID not configured")
	}
	if n.client == nil {
		return Failed(errors.New("pinpoint: client not configured"))
	}
	msg, err := BuildMessage(detections, n.now())
	if err != nil {
		return Failed(err)
	}
	out, err := n.client.SendMessages(ctx, &pinpoint.SendMessagesInput{
		ApplicationId: aws.String(n.appID),
		MessageRequest: &types.MessageRequest{
			Addresses: map[string]types.AddressConfiguration{
				userID: {ChannelType: types.ChannelTypePush},
			},
			MessageConfiguration: &types.DirectMessageConfiguration{
				DefaultPushNotificationMessage: &types.DefaultPushNotificationMessage{
					Title: aws.String(msg.Title),
					Body:  aws.String(msg.Body),
					Data:  msg.Data,
				},
			},
		},
	})
	if err != nil {
		return Failed(fmt.Errorf("pinpoint: send messages: %w", err))
	}
	if out != nil && out.MessageResponse != nil {
		if res, ok := out.MessageResponse.Result[userID]; ok && res.DeliveryStatus != types.DeliveryStatusSuccessful {
			return Failed(fmt.Errorf("pinpoint: delivery %s: %s", res.DeliveryStatus, aws.ToString(res.StatusMessage)))
		}
	}
	return Sent()
}

var _ Notifier = (*PinpointNotifier)(nil)
