// Package calldata prices transaction input data
package calldata

import (
	"github.com/ethereum/go-ethereum/params"
)

// Cost is the intrinsic gas breakdown of a transaction's input data
type Cost struct {
	ZeroBytes    uint64
	NonZeroBytes uint64
	Gas          uint64
}

// Price counts zero and non-zero bytes and charges them at the post-Istanbul rates
func Price(data []byte) Cost {
	var c Cost
	for _, b := range data {
		if b == 0 {
			c.ZeroBytes++
		} else {
			c.NonZeroBytes++
		}
	}
	c.Gas = c.ZeroBytes*params.TxDataZeroGas + c.NonZeroBytes*params.TxDataNonZeroGasEIP2028
	return c
}
