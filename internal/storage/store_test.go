package storage_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
	"github.com/san-kum/arnoldweb/internal/storage"
)

func sampleBoard() *farm.Board {
	b := farm.NewBoard("arnoldweb", 3, 2, 4)
	for id := 0; id < b.Len(); id++ {
		b.Set(id, []float64{0.8 + 0.1*float64(id), 1.0 / 3.0, 2 + float64(id), 1e-9})
	}
	b.Cells[4][2] = math.NaN()
	return b
}

var _ = Describe("Store", func() {
	var (
		dir string
		st  *storage.Store
		cfg *config.Config
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		st = storage.New(dir)
		Expect(st.Init()).To(Succeed())
		cfg = config.DefaultConfig()
		cfg.XRes, cfg.YRes, cfg.Seed = 3, 2, 42
	})

	It("saves and reloads metadata", func() {
		id, err := st.Save(cfg, sampleBoard(), 1500*time.Millisecond, map[string]float64{
			"megno_mean": 2.1,
			"bad":        math.Inf(1),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(HavePrefix("arnoldweb_"))
		Expect(id).To(HaveLen(len("arnoldweb_") + 8))

		meta, err := st.Load(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Module).To(Equal("arnoldweb"))
		Expect(meta.Seed).To(BeEquivalentTo(42))
		Expect(meta.OutputLength).To(Equal(4))
		Expect(meta.Elapsed).To(BeNumerically("~", 1.5, 1e-9))
		Expect(meta.Config.Arnold).To(Equal(cfg.Arnold))
		Expect(meta.Summary).To(HaveKeyWithValue("megno_mean", 2.1))
		Expect(meta.Summary).NotTo(HaveKey("bad"))
	})

	It("writes the results header", func() {
		id, err := st.Save(cfg, sampleBoard(), time.Second, nil)
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(filepath.Join(dir, id, "results.csv"))
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		Expect(lines).To(HaveLen(7))
		Expect(lines[0]).To(Equal("task,x,y,o0,o1,o2,o3"))
		Expect(lines[5]).To(HavePrefix("4,1,1,"))
	})

	It("round-trips the board bit for bit", func() {
		want := sampleBoard()
		id, err := st.Save(cfg, want, time.Second, nil)
		Expect(err).NotTo(HaveOccurred())

		got, err := st.LoadBoard(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.XRes).To(Equal(3))
		Expect(got.YRes).To(Equal(2))
		Expect(got.Width).To(Equal(4))

		for i := range want.Cells {
			for j := range want.Cells[i] {
				if i == 4 && j == 2 {
					Expect(math.IsNaN(got.Cells[i][j])).To(BeTrue())
					continue
				}
				Expect(got.Cells[i][j]).To(Equal(want.Cells[i][j]))
			}
		}
	})

	It("lists runs newest first and skips stray entries", func() {
		first, err := st.Save(cfg, sampleBoard(), time.Second, nil)
		Expect(err).NotTo(HaveOccurred())
		time.Sleep(10 * time.Millisecond)
		second, err := st.Save(cfg, sampleBoard(), time.Second, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(os.Mkdir(filepath.Join(dir, "junk"), 0755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)).To(Succeed())

		runs, err := st.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(2))
		Expect(runs[0].ID).To(Equal(second))
		Expect(runs[1].ID).To(Equal(first))
	})

	It("returns an empty list for a missing directory", func() {
		runs, err := storage.New(filepath.Join(dir, "absent")).List()
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(BeEmpty())
	})

	It("reports unknown runs", func() {
		_, err := st.Load("arnoldweb_deadbeef")
		Expect(err).To(MatchError(storage.ErrRunNotFound))

		_, err = st.LoadBoard("arnoldweb_deadbeef")
		Expect(err).To(MatchError(storage.ErrRunNotFound))
	})

	It("rejects a corrupted results file", func() {
		id, err := st.Save(cfg, sampleBoard(), time.Second, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(os.WriteFile(filepath.Join(dir, id, "results.csv"), []byte("task,x,y,o0,o1,o2,o3\n1,0,0,a,b,c,d\n"), 0644)).To(Succeed())

		_, err = st.LoadBoard(id)
		Expect(err).To(HaveOccurred())
	})
})
