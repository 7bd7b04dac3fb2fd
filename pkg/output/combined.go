package output

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/travigo/ssimconv/pkg/ssim"
	"github.com/travigo/ssimconv/pkg/table"
)

// CombinedTable collects every batch as joined (or condensed) record batches
// and concatenates them into one table in Finalize.
type CombinedTable struct {
	NopCarrierComplete

	condense bool
	batches  []arrow.RecordBatch
	table    arrow.Table
}

func NewCombinedTable(condense bool) *CombinedTable {
	return &CombinedTable{condense: condense}
}

func (c *CombinedTable) schema() *arrow.Schema {
	if c.condense {
		return table.CondensedSchema
	}
	return table.JoinedSchema
}

func (c *CombinedTable) ProcessBatch(flights []*ssim.FlightLeg, segments []*ssim.Segment, carrier *ssim.Carrier) error {
	var rec arrow.RecordBatch
	var err error

	if c.condense {
		rec, err = table.BuildCondensed(table.Condense(carrier, flights, segments))
	} else {
		rec, err = table.BuildJoined(table.Join(carrier, flights, segments))
	}
	if err != nil {
		return err
	}

	c.batches = append(c.batches, rec)
	return nil
}

func (c *CombinedTable) Finalize() error {
	c.table = table.Concat(c.schema(), c.batches)
	releaseAll(c.batches)
	c.batches = nil

	return nil
}

// Table is the combined table, available after Finalize. The caller owns it.
func (c *CombinedTable) Table() arrow.Table {
	return c.table
}

func releaseAll(batches []arrow.RecordBatch) {
	for _, batch := range batches {
		batch.Release()
	}
}
