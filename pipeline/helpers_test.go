package pipeline

import (
	"context"
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/algorithms"
	"github.com/go-sif/vispipe/dataset"
	"github.com/go-sif/vispipe/logging"
	"github.com/stretchr/testify/require"
)

// countingAlgorithm records the passes made on a wrapped Algorithm
type countingAlgorithm struct {
	vispipe.Algorithm
	info, update, data int
	onData             func(ctx vispipe.StageContext) error
}

func (c *countingAlgorithm) RequestInformation(ctx vispipe.StageContext) error {
	c.info++
	return c.Algorithm.RequestInformation(ctx)
}

func (c *countingAlgorithm) RequestUpdateExtent(ctx vispipe.StageContext) error {
	c.update++
	return c.Algorithm.RequestUpdateExtent(ctx)
}

func (c *countingAlgorithm) RequestData(ctx vispipe.StageContext) error {
	c.data++
	if err := c.Algorithm.RequestData(ctx); err != nil {
		return err
	}
	if c.onData != nil {
		return c.onData(ctx)
	}
	return nil
}

func createTestExecutive(conf *Config) *Executive {
	if conf == nil {
		conf = &Config{}
	}
	if conf.Logger == nil {
		conf.Logger = logging.GetLoggerAtLevel(logging.ErrorLevel)
	}
	return CreateExecutive(conf)
}

func addTestStage(t *testing.T, e *Executive, name string, alg vispipe.Algorithm) vispipe.StageID {
	id, err := e.AddStage(name, alg)
	require.Nil(t, err)
	return id
}

func connectTestStages(t *testing.T, e *Executive, producer, consumer vispipe.StageID) {
	require.Nil(t, e.Connect(vispipe.Out(producer, 0), consumer, 0))
}

func gridOutput(t *testing.T, e *Executive, id vispipe.StageID) *dataset.Grid {
	g, ok := e.Output(vispipe.Out(id, 0)).(*dataset.Grid)
	require.True(t, ok)
	return g
}

func pointsOutput(t *testing.T, e *Executive, id vispipe.StageID) *dataset.PointSet {
	p, ok := e.Output(vispipe.Out(id, 0)).(*dataset.PointSet)
	require.True(t, ok)
	return p
}

func executions(e *Executive, id vispipe.StageID) int64 {
	return e.Stats().GetNumExecutions()[id]
}

var background = context.Background()

// createSourceToPoints builds GridSource -> GridToPoints
func createSourceToPoints(t *testing.T, conf *Config, whole vispipe.Extent) (*Executive, vispipe.StageID, vispipe.StageID) {
	e := createTestExecutive(conf)
	src := addTestStage(t, e, "source", algorithms.NewGridSource(whole))
	conv := addTestStage(t, e, "toPoints", &algorithms.GridToPoints{})
	connectTestStages(t, e, src, conv)
	return e, src, conv
}
