package ga

import "math/rand"

// tournament возвращает индекс лучшей (с минимальной стоимостью) из k случайно выбранных особей.
func tournament(costs []int, k int, rng *rand.Rand) int {
	winner := rng.Intn(len(costs))
	for i := 1; i < k; i++ {
		if c := rng.Intn(len(costs)); costs[c] < costs[winner] {
			winner = c
		}
	}
	return winner
}

// maxRedraws ограничивает число повторных турниров при выборе второго родителя.
const maxRedraws = 8

// secondParent выбирает турниром родителя, отличного от p1. Если турнир
// упорно возвращает p1, берётся случайная особь из остальных.
func secondParent(costs []int, k, p1 int, rng *rand.Rand) int {
	for range maxRedraws {
		if p2 := tournament(costs, k, rng); p2 != p1 {
			return p2
		}
	}
	p2 := rng.Intn(len(costs) - 1)
	if p2 >= p1 {
		p2++
	}
	return p2
}

// cutPoints выбирает непустой отрезок [a, b) для кроссовера.
func cutPoints(n int, rng *rand.Rand) (int, int) {
	a, b := rng.Intn(n), rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	if a == b {
		b = a + 1
	}
	return a, b
}

// oxChild строит потомка оператором Order Crossover:
// отрезок [a, b) берётся у donor, остальные позиции заполняются
// работами из filler в циклическом порядке, начиная с позиции b.
//
// mark — буфер отметок длины n, stamp — уникальная метка для этого вызова.
func oxChild(donor, filler, child []int, a, b int, mark []int, stamp int) {
	n := len(donor)
	for i := a; i < b; i++ {
		child[i] = donor[i]
		mark[donor[i]] = stamp
	}
	pos := b % n
	for i := 0; i < n; i++ {
		job := filler[(b+i)%n]
		if mark[job] == stamp {
			continue
		}
		child[pos] = job
		mark[job] = stamp
		pos = (pos + 1) % n
	}
}

// mutateSwap меняет местами две различные случайные позиции.
func mutateSwap(p []int, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}
