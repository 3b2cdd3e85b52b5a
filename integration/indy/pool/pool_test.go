/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pool_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/greencultureai/indy-sdk/pkg/utils"
	"github.com/greencultureai/indy-sdk/platform/indy/core/callback"
	"github.com/greencultureai/indy-sdk/platform/indy/driver"
	"github.com/greencultureai/indy-sdk/platform/indy/driver/sim"
	"github.com/greencultureai/indy-sdk/platform/indy/genesis"
	"github.com/greencultureai/indy-sdk/platform/indy/pool"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func HaveErrorCode(code driver.ErrorCode) OmegaMatcher {
	return WithTransform(func(err error) driver.ErrorCode {
		c, ok := driver.CodeOf(err)
		if !ok {
			return driver.Success
		}
		return c
	}, Equal(code))
}

var _ = Describe("Pool", func() {
	var (
		ctx  context.Context
		d    *sim.Driver
		s    *pool.Service
		w    *genesis.Writer
		name string
	)

	BeforeEach(func() {
		ctx = context.Background()
		d = sim.New(filepath.Join(GinkgoT().TempDir(), "home"))
		w = &genesis.Writer{Dir: GinkgoT().TempDir(), IP: "127.0.0.1"}
		s = pool.NewService(d, pool.WithFixtures(w, genesis.MaxTestNodes))
		name = utils.GeneratePoolName("e2e")
	})

	AfterEach(func() {
		Expect(d.Close()).To(Succeed())
		Expect(s.Pending()).To(BeZero())
	})

	createConfig := func(path string) {
		cfg, err := genesis.PoolConfigJSON(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.CreateLedgerConfig(ctx, name, cfg)).To(Succeed())
	}

	Describe("lifecycle", func() {
		It("creates, opens, refreshes, queries, closes and deletes a pool", func() {
			h, err := s.CreateAndOpen(ctx, name)
			Expect(err).NotTo(HaveOccurred())
			Expect(h).To(BeNumerically(">", 0))
			Expect(w.Path(name)).To(BeAnExistingFile())

			Expect(s.Refresh(ctx, h)).To(Succeed())

			request := fmt.Sprintf(`{"reqId":%d,"identifier":"V4SGRU86Z58d6TV7PBUe6f","operation":{"type":"105","dest":"V4SGRU86Z58d6TV7PBUe6f"}}`, utils.NextRequestID())
			response, err := s.SubmitRequest(ctx, h, request)
			Expect(err).NotTo(HaveOccurred())
			reply := &sim.Reply{}
			Expect(json.Unmarshal([]byte(response), reply)).To(Succeed())
			Expect(reply.Op).To(Equal("REPLY"))
			Expect(reply.Result.Type).To(Equal("105"))

			Expect(s.Close(ctx, h)).To(Succeed())
			Expect(s.Delete(ctx, name)).To(Succeed())
			Expect(filepath.Join(d.Home(), "pool", name)).NotTo(BeADirectory())
		})

		It("reopens a closed pool", func() {
			h, err := s.CreateAndOpen(ctx, name)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Close(ctx, h)).To(Succeed())

			h2, err := s.Open(ctx, name, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(h2).NotTo(Equal(h))
			Expect(s.Close(ctx, h2)).To(Succeed())
		})

		It("orders writes on the ledger", func() {
			h, err := s.CreateAndOpen(ctx, name)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(func() { Expect(s.Close(ctx, h)).To(Succeed()) })

			var last uint64
			for range 3 {
				request := fmt.Sprintf(`{"reqId":%d,"identifier":"V4SGRU86Z58d6TV7PBUe6f","signature":"sig","operation":{"type":"1","dest":"V4SGRU86Z58d6TV7PBUe6f"}}`, utils.NextRequestID())
				response, err := s.SubmitRequest(ctx, h, request)
				Expect(err).NotTo(HaveOccurred())
				reply := &sim.Reply{}
				Expect(json.Unmarshal([]byte(response), reply)).To(Succeed())
				Expect(reply.Result.SeqNo).NotTo(BeNil())
				Expect(*reply.Result.SeqNo).To(Equal(last + 1))
				last = *reply.Result.SeqNo
			}
		})
	})

	Describe("fixtures", func() {
		It("opens a pool made of a subset of the validators", func() {
			path, err := w.WriteTestPool(name, 3, "")
			Expect(err).NotTo(HaveOccurred())
			createConfig(path)

			h, err := s.Open(ctx, name, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Close(ctx, h)).To(Succeed())
		})

		It("refuses genesis transactions without aliases", func() {
			path, err := w.WriteInvalidNodes(name, "")
			Expect(err).NotTo(HaveOccurred())
			createConfig(path)

			_, err = s.Open(ctx, name, "")
			Expect(err).To(HaveErrorCode(driver.CommonInvalidStructure))
		})

		It("cannot reach consensus with a wrong alias", func() {
			path, err := w.WriteWrongAlias(name, "")
			Expect(err).NotTo(HaveOccurred())
			createConfig(path)

			_, err = s.Open(ctx, name, "")
			Expect(err).To(HaveErrorCode(driver.PoolLedgerTerminated))
		})
	})

	Describe("errors", func() {
		It("rejects an existing configuration", func() {
			path, err := w.WriteTestPool(name, genesis.MaxTestNodes, "")
			Expect(err).NotTo(HaveOccurred())
			createConfig(path)

			cfg, err := genesis.PoolConfigJSON(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.CreateLedgerConfig(ctx, name, cfg)).To(HaveErrorCode(driver.PoolLedgerConfigAlreadyExistsError))
		})

		It("does not delete an open pool", func() {
			h, err := s.CreateAndOpen(ctx, name)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Delete(ctx, name)).To(HaveErrorCode(driver.CommonInvalidState))
			Expect(s.Close(ctx, h)).To(Succeed())
			Expect(s.Delete(ctx, name)).To(Succeed())
		})

		It("fails on a missing genesis file", func() {
			createConfigErr := func() error {
				cfg, err := genesis.PoolConfigJSON(filepath.Join(GinkgoT().TempDir(), "missing.txn"))
				Expect(err).NotTo(HaveOccurred())
				return s.CreateLedgerConfig(ctx, name, cfg)
			}
			Expect(createConfigErr()).To(HaveErrorCode(driver.CommonIOError))
		})

		It("fails on an unknown pool", func() {
			_, err := s.Open(ctx, name, "")
			Expect(err).To(HaveErrorCode(driver.PoolLedgerNotCreatedError))
			Expect(s.Refresh(ctx, 4242)).To(HaveErrorCode(driver.PoolLedgerInvalidPoolHandle))
		})

		It("reports a slow pool as a timeout", func() {
			slow := sim.New(filepath.Join(GinkgoT().TempDir(), "home"), sim.WithLatency(200*time.Millisecond))
			DeferCleanup(slow.Close)
			impatient := pool.NewService(slow, pool.WithFixtures(w, genesis.MaxTestNodes), pool.WithTimeouts(10*time.Millisecond, 10*time.Millisecond))

			_, err := impatient.CreateAndOpen(ctx, name)
			Expect(err).To(MatchError(callback.ErrTimeout))
			Expect(impatient.Pending()).To(BeZero())
		})

		It("rejects calls once the library is closed", func() {
			Expect(d.Close()).To(Succeed())
			Expect(s.Refresh(ctx, 1)).To(HaveErrorCode(driver.CommonInvalidState))
		})
	})

	It("keeps the pool storage layout", func() {
		h, err := s.CreateAndOpen(ctx, name)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Close(ctx, h)).To(Succeed())

		dir := filepath.Join(d.Home(), "pool", name)
		Expect(filepath.Join(dir, name+".txn")).To(BeAnExistingFile())
		Expect(filepath.Join(dir, "config.json")).To(BeAnExistingFile())

		stored, err := os.ReadFile(filepath.Join(dir, name+".txn"))
		Expect(err).NotTo(HaveOccurred())
		original, err := os.ReadFile(w.Path(name))
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).To(Equal(original))
	})
})
