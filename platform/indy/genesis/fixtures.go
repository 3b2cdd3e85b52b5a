/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package genesis

import (
	"github.com/greencultureai/indy-sdk/pkg/utils/errors"
)

// MaxTestNodes is the number of validators of the local test pool
const MaxTestNodes = 4

// WrongAlias is the alias given to the last node by WrongAlias
const WrongAlias = "ALIAS_NODE"

// ErrNodeCount is returned when a test pool of an unsupported size is requested
var ErrNodeCount = errors.Errorf("node count must be between 1 and %d", MaxTestNodes)

type testNode struct {
	alias      string
	blsKey     string
	clientPort int
	nodePort   int
	dest       string
	identifier string
	txnID      string
}

var testNodes = [MaxTestNodes]testNode{
	{
		alias:      "Node1",
		blsKey:     "c7XxG6zt8KVb5Y8cXdLTHoyuL75RT34bvceaVLWAuaJSuGJFJrianU2BGtWZgXGjpkowQEqUjyf7CQdpxWJ15LT7np3N3hzyXt8cPb1nqBXVqg569WBBkrGDNoce9NuZguvA4tYtfG36hijk9LwRyJerX5pG2CkYrCfQsjsL726GAVYXZDQgJBxWEAyPFwzYNmyA7wKi4CwH3ShrzsiDw1gChhpiGmgv9pHJTm2Hd5tG2oDydpSixjfL8CyrAFZTQoDzF7",
		clientPort: 9702,
		nodePort:   9701,
		dest:       "Gw6pDLhcBcoQesN72qfotTgFa7cbuqZpkX3Xo6pLhPhv",
		identifier: "Th7MpTaRZVRYnPiabds81Y",
		txnID:      "fea82e10e894419fe2bea7d96296a6d46f50f93f9eeda954ec461b2ed2950b62",
	},
	{
		alias:      "Node2",
		blsKey:     "c8eDxTwikUUGGhzxm7n6EZLMr8pp2S9HjfuZL1ZXesgz1TiXYxJFXdGk4S5ArRDqugtMkTMoTjJWzFgL29BVZ7Bx1TjAKKGuZq6RfJPJpRuXgC18Qk5nB3c7yjoGrHF27XuTHsBDZQB35DNmspn6GttceBDEo1Xi9Bx6PZM4hS4ZoVqhTX4RFQNqR9PzXZVkMzDbKDnF6fP3k2pY4bSAk4WBWKNoqf7poDyvuouRn7QWPDFx8xLXWVzUrksU5ssX2UQmxL",
		clientPort: 9704,
		nodePort:   9703,
		dest:       "8ECVSk179mjsjKRLWiQtssMLgp6EPhWXtaYyStWPSGAb",
		identifier: "EbP4aYNeTHL6q385GuVpRV",
		txnID:      "1ac8aece2a18ced660fef8694b61aac3af08ba875ce3026a160acbc3a3af35fc",
	},
	{
		alias:      "Node3",
		blsKey:     "jhzhentbeP2acbSiwQmwtDBn4v2gXcc1X6XYSndPneEbWB4uyEsfHbcC6hbgnKQ1npBDhtKyVrqjD43SgcvFwKRYCAbmmqPcQzKyH6gYzumDUGJhu5jMVZm6s52tHQw9U6GxURdrfn3H7xyfuqQ1L7K7hMyfihXb8dw4QZuUMvxzbTZpGT91mvgZtz5WAGT4ZMa98QVmTGJieA8XXmJek5Ro1MymUKtqEvqkYgdXeskRAwDwuG2hpPe7KSTCCggYdDp1EL",
		clientPort: 9706,
		nodePort:   9705,
		dest:       "DKVxG2fXXTU8yT5N7hGEbXB3dfdAnYv1JczDUHpmDxya",
		identifier: "4cU41vWW82ArfxJxHkzXPG",
		txnID:      "7e9f355dffa78ed24668f0e0e369fd8c224076571c51e2ea8be5f26479edebe4",
	},
	{
		alias:      "Node4",
		blsKey:     "dpcyXrfrUjGbvRmWsDLG2wvuw39GBFnkCFhcP4uCLqgC4PzGe4dDqtkjGtxB29kspSZzFKr1cCDzYT6Wwzn42BXjRrcRSX7WV38KN83xtT9rxonNqkDZMk9Zr1KTETU7QxLsKMqXmqx37iP24ifzm2DP6yTfiPsLfkPVaHSK5LbUZZbGbqH5XsgDvMpot6u1Fg13xxR8Ze9VbDRJaM6ztbcica5aTb6VeVuN4vRyHV5bPzsKR37aSNusmCk9TavL4WASxm",
		clientPort: 9708,
		nodePort:   9707,
		dest:       "4PS3EDQ3dW1tci1Bp6543CfuuebjFrg36kLAUcskGfaA",
		identifier: "TWwCRQRZ2ZHMJFn9TzLp7W",
		txnID:      "aa5e817d7cc626170eca175822029339a444eb0ee8f0bd20d3b0b76e566fb008",
	},
}

func (n testNode) txn(ip, alias, blsKey string) NodeTxn {
	return NodeTxn{
		Data: NodeData{
			Alias:      alias,
			BLSKey:     blsKey,
			ClientIP:   ip,
			ClientPort: n.clientPort,
			NodeIP:     ip,
			NodePort:   n.nodePort,
			Services:   []string{ValidatorService},
		},
		Dest:       n.dest,
		Identifier: n.identifier,
		TxnID:      n.txnID,
		Type:       NodeTxnType,
	}
}

// TestPool returns the genesis transactions of the first count validators of
// the local test pool, all reachable at ip.
func TestPool(ip string, count int) ([]NodeTxn, error) {
	if count < 1 || count > MaxTestNodes {
		return nil, errors.Wrapf(ErrNodeCount, "got [%d]", count)
	}
	txns := make([]NodeTxn, 0, count)
	for _, n := range testNodes[:count] {
		txns = append(txns, n.txn(ip, n.alias, n.blsKey))
	}
	return txns, nil
}

// InvalidNodes returns the test pool validators stripped of alias and BLS key.
func InvalidNodes(ip string) []NodeTxn {
	txns := make([]NodeTxn, 0, MaxTestNodes)
	for _, n := range testNodes {
		txns = append(txns, n.txn(ip, "", ""))
	}
	return txns
}

// WrongAliasNodes returns the test pool validators without BLS keys, the last
// one announced under an alias the running node does not have.
func WrongAliasNodes(ip string) []NodeTxn {
	txns := make([]NodeTxn, 0, MaxTestNodes)
	for i, n := range testNodes {
		alias := n.alias
		if i == MaxTestNodes-1 {
			alias = WrongAlias
		}
		txns = append(txns, n.txn(ip, alias, ""))
	}
	return txns
}
