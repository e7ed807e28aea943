package dynamo

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute and index names shared by repos and Bootstrap.
const (
	attrUserID      = "user_id"
	attrPhoneNumber = "phonenumber"
	attrCreatedAt   = "created_at"
	attrOwnerID     = "owner_id"

	// phoneGuardPrefix keys the item that reserves a phone number in the users table.
	phoneGuardPrefix = "phone#"

	indexPhoneNumber = "phonenumber-index"

	// batchWriteLimit is the maximum number of requests in one BatchWriteItem call.
	batchWriteLimit = 25
)

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// chunk splits reqs into slices of at most size elements.
func chunk(reqs []types.WriteRequest, size int) [][]types.WriteRequest {
	var out [][]types.WriteRequest
	for len(reqs) > size {
		out = append(out, reqs[:size])
		reqs = reqs[size:]
	}
	if len(reqs) > 0 {
		out = append(out, reqs)
	}
	return out
}
