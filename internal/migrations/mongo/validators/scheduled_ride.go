package validators

import "go.mongodb.org/mongo-driver/bson"

var ScheduledRideValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"user_id",
			"pickup_location",
			"pickup_lat",
			"pickup_lng",
			"drop_location",
			"drop_lat",
			"drop_lng",
			"scheduled_time",
			"vehicle_type",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"pickup_location": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 200,
			},

			"pickup_lat": bson.M{
				"bsonType": "double",
				"minimum":  -90,
				"maximum":  90,
			},

			"pickup_lng": bson.M{
				"bsonType": "double",
				"minimum":  -180,
				"maximum":  180,
			},

			"drop_location": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 200,
			},

			"drop_lat": bson.M{
				"bsonType": "double",
				"minimum":  -90,
				"maximum":  90,
			},

			"drop_lng": bson.M{
				"bsonType": "double",
				"minimum":  -180,
				"maximum":  180,
			},

			"scheduled_time": bson.M{
				"bsonType": "date",
			},

			"vehicle_type": bson.M{
				"bsonType": "string",
				"enum":     []string{"bike", "auto", "cab"},
			},

			"preferences": bson.M{
				"bsonType": "object",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "booked", "cancelled", "expired"},
			},

			"booking_id": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
