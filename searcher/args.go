package searcher

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards are bounded to [Loss, Win] and estimate the chance of winning
const Win = 1.0
const Loss = 0.0

// Slope of the sigmoid mapping an evaluation gain to a reward. A gain of
// about 200 evaluation units saturates close to Win.
const SigmoidScale = 0.0125

// Hard ceiling on root visits, applied whatever the configured budgets
const MaxVisits = 10_000_000

// Simulations a worker runs between two checks of its stop condition
const DefaultBatchSize = 20
