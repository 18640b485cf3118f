package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMatchDocument(t *testing.T) {
	month := bson.E{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{
		bson.D{{Key: "$month", Value: "$dateOfSale"}}, 7,
	}}}}

	assert.Equal(t, bson.D{}, MatchDocument(Filter{}))
	assert.Equal(t, bson.D{month}, MatchDocument(Filter{Month: 7}))

	text := MatchDocument(Filter{Search: "a+b"})
	regex := primitive.Regex{Pattern: `a\+b`, Options: "i"}
	assert.Equal(t, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "title", Value: regex}},
		bson.D{{Key: "description", Value: regex}},
	}}}, text)

	both := MatchDocument(Filter{Month: 7, Search: "329.85"})
	require.Len(t, both, 2)
	assert.Equal(t, month, both[0])
	or := both[1].Value.(bson.A)
	require.Len(t, or, 3)
	assert.Equal(t, bson.D{{Key: "price", Value: 329.85}}, or[2])
}

func TestListPipelineStages(t *testing.T) {
	p := ListPipeline(Filter{Month: 3}, 20, 10)

	require.Len(t, p, 4)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, bson.E{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}, p[1][0])
	assert.Equal(t, bson.E{Key: "$skip", Value: int64(20)}, p[2][0])
	assert.Equal(t, bson.E{Key: "$limit", Value: int64(10)}, p[3][0])
}

func TestStatisticsPipeline(t *testing.T) {
	p := StatisticsPipeline(5)

	require.Len(t, p, 2)
	assert.Equal(t, bson.E{Key: "$match", Value: MatchDocument(Filter{Month: 5})}, p[0][0])
	group := p[1][0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "_id", Value: nil}, group[0])
	assert.Equal(t, bson.E{Key: "totalSaleAmount", Value: bson.D{{Key: "$sum", Value: "$price"}}}, group[1])
	assert.Equal(t, "soldItems", group[2].Key)
	assert.Equal(t, "notSoldItems", group[3].Key)
}

func TestBarChartPipeline(t *testing.T) {
	p := BarChartPipeline(12)

	require.Len(t, p, 2)
	bucket := p[1][0]
	require.Equal(t, "$bucket", bucket.Key)
	spec := bucket.Value.(bson.D)
	assert.Equal(t, bson.E{Key: "groupBy", Value: "$price"}, spec[0])
	boundaries := spec[1].Value.(bson.A)
	assert.Len(t, boundaries, len(PriceBoundaries))
	assert.Equal(t, float64(0), boundaries[0])
	assert.Equal(t, float64(1000), boundaries[len(boundaries)-1])
	assert.Equal(t, bson.E{Key: "default", Value: CatchAllLabel}, spec[2])
}

func TestPieChartPipeline(t *testing.T) {
	p := PieChartPipeline(1)

	require.Len(t, p, 4)
	assert.Equal(t, bson.E{Key: "_id", Value: "$category"}, p[1][0].Value.(bson.D)[0])
	assert.Equal(t, "$sort", p[2][0].Key)
	assert.Equal(t, bson.D{
		{Key: "_id", Value: 0},
		{Key: "category", Value: "$_id"},
		{Key: "count", Value: 1},
	}, p[3][0].Value)
}
