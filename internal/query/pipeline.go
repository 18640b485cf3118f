package query

import (
	"go.mongodb.org/mongo-driver/bson"           // BSON documents
	"go.mongodb.org/mongo-driver/bson/primitive" // Regex values
	"go.mongodb.org/mongo-driver/mongo"          // Pipeline type
)

// monthExpr compares the calendar month of dateOfSale with month
func monthExpr(month int) bson.D {
	return bson.D{{Key: "$eq", Value: bson.A{
		bson.D{{Key: "$month", Value: "$dateOfSale"}},
		month,
	}}}
}

// MatchDocument builds the query document for a filter. It is used both as a
// $match stage and as the CountDocuments filter, so list and count agree.
func MatchDocument(f Filter) bson.D {
	doc := bson.D{}
	if f.HasMonth() {
		doc = append(doc, bson.E{Key: "$expr", Value: monthExpr(f.Month)})
	}
	if f.HasSearch() {
		pattern := primitive.Regex{Pattern: f.SearchPattern(), Options: "i"}
		or := bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}
		if price, ok := f.SearchPrice(); ok {
			or = append(or, bson.D{{Key: "price", Value: price}})
		}
		doc = append(doc, bson.E{Key: "$or", Value: or})
	}
	return doc
}

// ListPipeline returns one page of matching transactions in insertion order
func ListPipeline(f Filter, skip, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: MatchDocument(f)}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}
}

func monthStage(month int) bson.D {
	return bson.D{{Key: "$match", Value: MatchDocument(Filter{Month: month})}}
}

// StatisticsPipeline sums price and counts sold and unsold records of a month
func StatisticsPipeline(month int) mongo.Pipeline {
	return mongo.Pipeline{
		monthStage(month),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalSaleAmount", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "soldItems", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{"$sold", 1, 0}}}}}},
			{Key: "notSoldItems", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{"$sold", 0, 1}}}}}},
		}}},
	}
}

// BarChartPipeline buckets a month's prices by PriceBoundaries; prices outside them land in CatchAllLabel
func BarChartPipeline(month int) mongo.Pipeline {
	boundaries := make(bson.A, len(PriceBoundaries))
	for i, b := range PriceBoundaries {
		boundaries[i] = b
	}
	return mongo.Pipeline{
		monthStage(month),
		{{Key: "$bucket", Value: bson.D{
			{Key: "groupBy", Value: "$price"},
			{Key: "boundaries", Value: boundaries},
			{Key: "default", Value: CatchAllLabel},
			{Key: "output", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}},
		}}},
	}
}

// PieChartPipeline counts a month's records per category, sorted by category
func PieChartPipeline(month int) mongo.Pipeline {
	return mongo.Pipeline{
		monthStage(month),
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "count", Value: 1},
		}}},
	}
}
