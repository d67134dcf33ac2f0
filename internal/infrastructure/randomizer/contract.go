package randomizer

// Randomizer предоставляет абстракцию для рандомизации.
// Каждая генерация пар владеет собственным экземпляром: общий источник между вызовами
// ломает воспроизводимость по seed.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
}
