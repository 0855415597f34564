package validators

import "go.mongodb.org/mongo-driver/bson"

// TokenRecordValidator is the JSON-schema validator applied to the token
// record collection. Tokens are hex HMAC-SHA256 digests.
var TokenRecordValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "slice_id", "staff_id", "staff_name", "start_time", "created_at", "expires_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9a-f]{64}$",
			},
			"slice_id": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 128,
			},
			"staff_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"staff_name": bson.M{
				"bsonType": "string",
			},
			"staff_email": bson.M{
				"bsonType": "string",
			},
			"staff_phone": bson.M{
				"bsonType": "string",
			},
			"start_time": bson.M{
				"bsonType": "date",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
			"expires_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
